package middleware

import (
	"net/http"
	"strings"

	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenService *services.TokenService
	testMode     bool
}

func NewAuthMiddleware(tokenService *services.TokenService, testMode bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		testMode:     testMode,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.testMode {
			clerkID := c.GetHeader("X-Test-Clerk-ID")
			if clerkID == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "X-Test-Clerk-ID header required in test mode"})
				c.Abort()
				return
			}
			c.Set("clerkId", clerkID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := m.tokenService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("clerkId", claims.ClerkID)
		c.Next()
	}
}

// GetClerkID returns the authenticated identity-provider subject id set by
// RequireAuth.
func GetClerkID(c *gin.Context) string {
	clerkID, exists := c.Get("clerkId")
	if !exists {
		return ""
	}
	return clerkID.(string)
}
