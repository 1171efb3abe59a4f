package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egspgoi/projectverse/internal/models"
)

// Middleware rejects requests without a verifiable session cookie and
// attaches the parsed session to the gin context.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := m.Read(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not signed in", "redirect": "/"})
			return
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// RequireRole guards a route group for a single portal role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := FromContext(c)
		if s == nil || s.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden for this role"})
			return
		}
		c.Next()
	}
}
