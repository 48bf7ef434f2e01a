package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskvault-dev/taskvault/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly, bypassing registration. The hash is
// a placeholder; tests that exercise login go through the auth service.
func CreateUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$placeholderplaceholderplaceholder",
	}
	require.NoError(t, db.Create(&user).Error)

	return &user
}

// At returns a fixed timestamp offset by the given number of minutes, for
// seeding rows with deterministic created_at ordering.
func At(minutes int) time.Time {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}
