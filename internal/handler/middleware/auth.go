package middleware

import (
	"log/slog"
	"strings"

	"cappa-booking/internal/handler/httperr"
	"cappa-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

const (
	ctxUserIDKey    = "user_id"
	ctxUserEmailKey = "user_email"
)

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortUnauthorized(c, jwt.ErrInvalidToken, "Access token required")
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortUnauthorized(c, err, "Invalid or expired token")
			return
		}
		if claims.TokenType != jwt.TokenTypeAccess {
			httperr.AbortUnauthorized(c, jwt.ErrInvalidToken, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUserEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present but lets the
// request through anonymously otherwise. The intake step accepts both.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := m.tokens.ValidateToken(token); err == nil && claims.TokenType == jwt.TokenTypeAccess {
				c.Set(ctxUserIDKey, claims.UserID)
				c.Set(ctxUserEmailKey, claims.Email)
			}
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
