package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	c := requestContext("10.0.0.1:1234", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2",
		"X-Real-IP":       "198.51.100.1",
	})
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

func TestGetClientIPFallsBackToRealIP(t *testing.T) {
	c := requestContext("10.0.0.1:1234", map[string]string{
		"X-Real-IP": "198.51.100.1",
	})
	assert.Equal(t, "198.51.100.1", getClientIP(c))
}

func TestGetClientIPStripsPortFromRemoteAddr(t *testing.T) {
	c := requestContext("192.0.2.9:5555", nil)
	assert.Equal(t, "192.0.2.9", getClientIP(c))

	c = requestContext("192.0.2.9", nil)
	assert.Equal(t, "192.0.2.9", getClientIP(c))
}
