package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func docsEngine(cfg DocsConfig, auth gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/swagger/*any", DocsAccess(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return engine
}

func getDocs(engine *gin.Engine, remote string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestDocsAccess(t *testing.T) {
	denyAll := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

	tests := []struct {
		name   string
		cfg    DocsConfig
		remote string
		want   int
	}{
		{"disabled", DocsConfig{}, "10.0.0.1:5000", http.StatusNotFound},
		{"open", DocsConfig{Enabled: true}, "203.0.113.9:5000", http.StatusOK},
		{"cidr match", DocsConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.20.30.40:5000", http.StatusOK},
		{"single ip", DocsConfig{Enabled: true, AllowedIPs: []string{" 192.168.1.7 "}}, "192.168.1.7:80", http.StatusOK},
		{"outside list", DocsConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "bogus"}}, "172.16.0.1:80", http.StatusForbidden},
		{"auth required", DocsConfig{Enabled: true, RequireAuth: true}, "10.0.0.1:5000", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getDocs(docsEngine(tt.cfg, denyAll), tt.remote))
		})
	}
}

func TestParsePrefixes(t *testing.T) {
	got := parsePrefixes([]string{"10.1.2.3/8", "::1", "nope", "300.1.1.1"})
	if assert.Len(t, got, 2) {
		assert.Equal(t, "10.0.0.0/8", got[0].String())
		assert.Equal(t, "::1/128", got[1].String())
	}
}
