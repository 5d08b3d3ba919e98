package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientIPResolution(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(remoteAddr string, headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = remoteAddr
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	// First forwarded hop wins over everything else.
	c := newCtx("10.0.0.1:52100", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2",
		"X-Real-IP":       "203.0.113.9",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))

	c = newCtx("10.0.0.1:52100", map[string]string{"X-Real-IP": "203.0.113.9"})
	assert.Equal(t, "203.0.113.9", clientIP(c))

	// No proxy headers: the socket peer, port stripped.
	c = newCtx("192.0.2.4:41000", nil)
	assert.Equal(t, "192.0.2.4", clientIP(c))

	// RemoteAddr without a port passes through as-is.
	c = newCtx("192.0.2.4", nil)
	assert.Equal(t, "192.0.2.4", clientIP(c))
}
