package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminMiddleware struct {
	adminClerkIDs []string
}

func NewAdminMiddleware(adminClerkIDs []string) *AdminMiddleware {
	return &AdminMiddleware{
		adminClerkIDs: adminClerkIDs,
	}
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		clerkID := GetClerkID(c)
		if clerkID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		isAdmin := false
		for _, admin := range m.adminClerkIDs {
			if admin == clerkID {
				isAdmin = true
				break
			}
		}

		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
