package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/auth"
	"github.com/taskvault-dev/taskvault/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identify extracts the caller's identity from the Authorization header
// and stores it in the request context. A missing or invalid token is not
// an error here: the request proceeds without an identity, and operations
// that require one reject it themselves.
func Identify(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.Next()
			return
		}

		identity, err := tokens.Verify(parts[1])

		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    identity.ID,
			Name:  identity.Name,
			Email: identity.Email,
		})
		ctx.Next()
	}
}
