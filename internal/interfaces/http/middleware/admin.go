package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the operator token
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth guards the operator API with a static token from config.
// The router only mounts admin routes when a token is configured.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := strings.TrimSpace(c.GetHeader(AdminTokenHeader))
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			abortUnauthorized(c, "INVALID_ADMIN_TOKEN", "Invalid or missing admin token")
			return
		}
		c.Next()
	}
}
