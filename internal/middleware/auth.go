package middleware

import (
	"net/http"
	"strings"

	"jaggery_shop/internal/domain"
	"jaggery_shop/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxUserRole  = "userRole"
)

// Authenticate verifies the Bearer token and stores the caller's identity
// in the request context. It rejects before any handler or database work
// runs.
func Authenticate(tokens *token.Manager, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			log.Warnf("Middleware: Invalid Authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			log.Warnf("Middleware: Token verification failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates the admin console. The role is re-read from the users
// table rather than trusted from the token, so a demoted account loses
// access immediately.
func RequireAdmin(userRepo domain.UserRepository, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Admin access required"})
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), userID)
		if err != nil || !user.Role.IsStaff() {
			log.Warnf("Middleware: Admin access denied for user %s", userID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Admin access required"})
			return
		}

		c.Set(ctxUserRole, user.Role)
		c.Next()
	}
}

// UserID returns the authenticated caller's ID, or "" when the request did
// not pass Authenticate.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func UserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}
