package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(remote string, headers map[string]string) *gin.Context {
		c, engine := gin.CreateTestContext(httptest.NewRecorder())
		require.NoError(t, engine.SetTrustedProxies([]string{"10.0.0.0/8"}))
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = remote
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	// behind a trusted proxy
	assert.Equal(t, "203.0.113.7", ExtractClientIP(newCtx("10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})))
	assert.Equal(t, "198.51.100.2", ExtractClientIP(newCtx("10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.2"})))
	assert.Equal(t, "10.0.0.1", ExtractClientIP(newCtx("10.0.0.1:80", map[string]string{"X-Forwarded-For": "garbage"})))

	// direct clients cannot choose their address
	assert.Equal(t, "203.0.113.9", ExtractClientIP(newCtx("203.0.113.9:4242", map[string]string{"X-Forwarded-For": "1.2.3.4"})))
	assert.Equal(t, "203.0.113.9", ExtractClientIP(newCtx("203.0.113.9:4242", map[string]string{"X-Real-IP": "5.6.7.8"})))
}
