package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vrevia/vrevia-back/internal/config"
)

const currentUserKey = "currentUser"

// CurrentUser is the explicit request identity set by the auth middleware.
// Handlers read it instead of resolving sessions themselves.
type CurrentUser struct {
	UserID    uint
	Email     string
	Role      string
	StudentID *uint
}

// Current returns the identity attached to the request, if any.
func Current(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return CurrentUser{}, false
	}
	cu, ok := v.(CurrentUser)
	return cu, ok
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		claims, err := ParseToken([]byte(cfg.JWTSecret), parts[1])
		if err != nil || claims.TokenType == "refresh" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(currentUserKey, CurrentUser{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			StudentID: claims.StudentID,
		})
		c.Next()
	}
}

// RequireRole rejects requests whose identity does not carry the role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cu, ok := Current(c)
		if !ok || cu.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
