package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TrustProxies limits which peers may set the client address. Forwarding
// headers are honored only from the given proxies (IPs or CIDRs); an empty
// list trusts none. platform selects a CDN header: "cloudflare", "google", a
// raw header name, or "" for none.
func TrustProxies(e *gin.Engine, proxies []string, platform string) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := e.SetTrustedProxies(proxies); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "":
		e.TrustedPlatform = ""
	case "cloudflare":
		e.TrustedPlatform = gin.PlatformCloudflare
	case "google":
		e.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		e.TrustedPlatform = strings.TrimSpace(platform)
	}
	return nil
}

// RealIP stores the client address under "real_ip" for rate limiting and
// access logs. It is whatever Gin resolves under the TrustProxies rules.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
