package middleware

import (
	"github.com/gin-gonic/gin"

	"bootcamp-backend/internal/shared/utils"
)

const clientIPKey = "client_ip"

// ClientIP extracts the client IP once so later middleware agree on it
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}

// GetClientIP returns the IP set by ClientIP, extracting it if the middleware did not run
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
