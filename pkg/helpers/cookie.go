package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// Manager writes the auth cookie pair. Production cookies are Secure and
// SameSite=None so a separately hosted frontend can send them.
type Manager struct {
	Domain     string
	Production bool
}

func NewCookie(domain string, production bool) *Manager {
	return &Manager{Domain: domain, Production: production}
}

func (m *Manager) sameSite(c *gin.Context) {
	if m.Production {
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
}

func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	m.sameSite(c)
	c.SetCookie(AccessCookie, access, maxAgeFrom(aexp), "/", m.Domain, m.Production, true)
	c.SetCookie(RefreshCookie, refresh, maxAgeFrom(rexp), "/", m.Domain, m.Production, true)
}

// Clear overwrites both cookies with empty, already expired values.
func (m *Manager) Clear(c *gin.Context) {
	m.sameSite(c)
	c.SetCookie(AccessCookie, "", -1, "/", m.Domain, m.Production, true)
	c.SetCookie(RefreshCookie, "", -1, "/", m.Domain, m.Production, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
