package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows the configured browser origins. "*" trusts every origin.
func CORS(trustedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Add("Vary", "Origin")
		c.Writer.Header().Add("Vary", "Access-Control-Request-Method")

		origin := c.GetHeader("Origin")
		if origin != "" {
			for _, o := range trustedOrigins {
				if origin != o && o != "*" {
					continue
				}

				c.Header("Access-Control-Allow-Origin", origin)
				// preflight request
				if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
					c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
					c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
					c.AbortWithStatus(http.StatusNoContent)
					return
				}
				break
			}
		}

		c.Next()
	}
}
