package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/handler/httperr"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey  = "user_id"
	ctxNewUserKey = "new_user"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth validates the bearer token and puts the caller's identity
// into the request context. Tokens are minted by the external identity
// service; this service only verifies them.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, usecase.ErrInvalidToken, "Access token required")
			return
		}

		userID, newUser, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxNewUserKey, newUser)
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
		})
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetNewUser reports whether the token marked the caller as a
// first-time customer. Absent claim means not new.
func GetNewUser(c *gin.Context) bool {
	newUser, exists := c.Get(ctxNewUserKey)
	if !exists {
		return false
	}

	v, ok := newUser.(bool)
	return ok && v
}
