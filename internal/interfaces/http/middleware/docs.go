package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
)

// DocsConfig controls who may read the API documentation.
type DocsConfig struct {
	Enabled bool
	// RequireAuth runs the staff JWT check before serving the docs
	RequireAuth bool
	// AllowedIPs holds addresses or CIDR prefixes; empty allows everyone
	AllowedIPs []string
}

// DocsAccess guards the /swagger routes. Disabled docs answer 404 so the
// route looks absent.
func DocsAccess(cfg DocsConfig, authMiddleware gin.HandlerFunc) gin.HandlerFunc {
	allowed := parsePrefixes(cfg.AllowedIPs)

	return func(c *gin.Context) {
		requestID := c.GetString(RequestIDKey)
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse(dto.ErrCodeNotFound, "Documentación no disponible", requestID))
			return
		}
		if len(allowed) > 0 && !clientAllowed(c.ClientIP(), allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Acceso restringido a la documentación", requestID))
			return
		}
		if cfg.RequireAuth && authMiddleware != nil {
			authMiddleware(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}

// parsePrefixes skips entries that are neither an address nor a prefix.
func parsePrefixes(entries []string) []netip.Prefix {
	var out []netip.Prefix
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if strings.Contains(e, "/") {
			if p, err := netip.ParsePrefix(e); err == nil {
				out = append(out, p.Masked())
			}
			continue
		}
		if addr, err := netip.ParseAddr(e); err == nil {
			out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return out
}

func clientAllowed(ip string, allowed []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range allowed {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
