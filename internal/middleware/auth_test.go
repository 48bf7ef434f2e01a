package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskvault-dev/taskvault/internal/auth"
	"github.com/taskvault-dev/taskvault/internal/types"
)

func identifyTestRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Identify(tokens))
	r.GET("/whoami", func(ctx *gin.Context) {
		user, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	})

	return r
}

func TestIdentify_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := identifyTestRouter(tokens)

	token, err := tokens.Generate(7, "Ana", "ana@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ana@x.com"`)
}

func TestIdentify_DegradesWithoutRaising(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := identifyTestRouter(tokens)

	expired, err := auth.NewTokenManager("test-secret", -time.Hour).Generate(7, "Ana", "ana@x.com")
	require.NoError(t, err)

	forged, err := auth.NewTokenManager("other-secret", time.Hour).Generate(7, "Ana", "ana@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "malformed header", header: "Token abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "forged token", header: "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Absent and invalid credentials are indistinguishable: the
			// request reaches the handler with no identity.
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
