// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/pkg/auth"
)

// Context keys set by SessionAuth
const (
	SessionIDKey    = "session_id"
	CashierEmailKey = "cashier_email"
)

// SessionSource exposes the id of the live terminal session
type SessionSource interface {
	SessionID() string
}

// SessionAuth requires a session token issued for the live session.
// Tokens of a disconnected or replaced session are rejected.
func SessionAuth(jwtManager *auth.JWTManager, sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from header
		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateSessionToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		current := sessions.SessionID()
		if current == "" || claims.SessionID != current {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Session is no longer active",
			})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, claims.SessionID)
		c.Set(CashierEmailKey, claims.Email)

		c.Next()
	}
}

// GetCashierEmailFromContext extracts the cashier e-mail set by SessionAuth
func GetCashierEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(CashierEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
