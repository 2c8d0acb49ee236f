package middleware

import (
	"net/http"

	"turfbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects requests whose token does not carry the admin flag.
// Services still re-check the flag on admin operations; this keeps the
// failure at the edge for the common case.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Admin flag not found in token")
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
