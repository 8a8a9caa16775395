package utils

import (
	"net"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the client address as gin resolves it.
//
// Forwarding headers (X-Forwarded-For, X-Real-IP) are honored only when the
// direct peer is one of the engine's trusted proxies, see
// gin.Engine.SetTrustedProxies. Otherwise the connection address wins, so a
// client cannot pick its own identity by sending a header.
func ExtractClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); isValidIP(ip) {
		return ip
	}

	// RemoteAddr without a port
	if isValidIP(c.Request.RemoteAddr) {
		return c.Request.RemoteAddr
	}
	return "127.0.0.1"
}

// isValidIP validates if a string is a valid IPv4 or IPv6 address
func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
