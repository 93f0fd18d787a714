package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// AuthMW wraps the session service for middleware
type AuthMW struct {
	sessionSvc domain.SessionService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(sessionSvc domain.SessionService) *AuthMW {
	return &AuthMW{sessionSvc: sessionSvc}
}

// WithSession returns middleware that requires a bearer token whose
// signature and backing session row are both valid.
func (mw *AuthMW) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		session, claims, err := mw.sessionSvc.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		// user id as string for Casbin compatibility
		c.Set("user_id", fmt.Sprintf("%d", claims.UserID))
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("session_id", session.ID)

		c.Next()
	}
}
