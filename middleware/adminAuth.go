package middleware

import (
	"net/http"
	"strings"

	"studiobook/config"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the administrator endpoints. It requires a
// bearer JWT whose "org" claim matches the configured organization.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or malformed Authorization header")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		org, err := utils.ExtractOrgFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			c.Abort()
			return
		}
		if org != config.AppConfig.OrgID {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "Token does not belong to this organization")
			c.Abort()
			return
		}

		c.Set("org", org)
		c.Next()
	}
}
