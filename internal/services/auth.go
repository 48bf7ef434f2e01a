package services

import (
	"context"
	"errors"

	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService registers identities and verifies login credentials.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a new user with a bcrypt hash of the password. Email
// uniqueness is an exact match on the stored value.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var existing models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil, apperr.AlreadyExists("User already exists with this email")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials by email lookup and hash comparison. An
// unknown email and a wrong password fail identically so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidCredentials("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.InvalidCredentials("Invalid email or password")
	}

	return &user, nil
}
