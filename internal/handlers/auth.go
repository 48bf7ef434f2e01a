package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/auth"
	"github.com/taskvault-dev/taskvault/internal/services"
	"github.com/taskvault-dev/taskvault/internal/types"
	"github.com/taskvault-dev/taskvault/internal/utils"
)

type AuthHandler struct {
	auth   *services.AuthService
	tokens *auth.TokenManager
}

func NewAuthHandler(authService *services.AuthService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{auth: authService, tokens: tokens}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondInvalidRequest(ctx, err)
		return
	}

	user, err := h.auth.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": types.RegisteredUserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		"message": "User created successfully",
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondInvalidRequest(ctx, err)
		return
	}

	user, err := h.auth.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Name, user.Email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user": types.UserResponse{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			},
			"token": token,
		},
		"message": "Login successful",
	})
}

// Me echoes the identity decoded from the bearer token.
func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": types.UserResponse{
			ID:    currentUser.ID,
			Name:  currentUser.Name,
			Email: currentUser.Email,
		},
	})
}
