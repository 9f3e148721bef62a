package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
)

var tokenUser = entity.TokenUser{UserID: "u1", Email: "jd@example.com", Username: "jd", Role: entity.RoleUser}

func TestJWT_RoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	access, aexp, err := m.GenerateAccessToken(tokenUser)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), aexp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, tokenUser, claims.User)
	assert.Equal(t, "u1", claims.Subject)
}

func TestJWT_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, time.Hour)
	refresh, _, err := m.GenerateRefreshToken(tokenUser)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "jd", claims.User.Username)
}

func TestJWT_Expired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	access, _, err := m.GenerateAccessToken(tokenUser)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, time.Hour)
	_, err := m.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "secret123"))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func cookieHeaders(t *testing.T, fn func(c *gin.Context)) []string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w.Header().Values("Set-Cookie")
}

func TestCookie_SetPairDevelopment(t *testing.T) {
	m := NewCookie("", false)
	exp := time.Now().Add(time.Hour)
	headers := cookieHeaders(t, func(c *gin.Context) { m.SetPair(c, "a", exp, "r", exp) })

	require.Len(t, headers, 2)
	assert.True(t, strings.HasPrefix(headers[0], AccessCookie+"=a"))
	assert.True(t, strings.HasPrefix(headers[1], RefreshCookie+"=r"))
	assert.Contains(t, headers[0], "HttpOnly")
	assert.Contains(t, headers[0], "SameSite=Lax")
	assert.NotContains(t, headers[0], "Secure")
}

func TestCookie_SetPairProduction(t *testing.T) {
	m := NewCookie("", true)
	exp := time.Now().Add(time.Hour)
	headers := cookieHeaders(t, func(c *gin.Context) { m.SetPair(c, "a", exp, "r", exp) })

	require.Len(t, headers, 2)
	assert.Contains(t, headers[0], "Secure")
	assert.Contains(t, headers[0], "SameSite=None")
}

func TestCookie_Clear(t *testing.T) {
	headers := cookieHeaders(t, func(c *gin.Context) { NewCookie("", false).Clear(c) })

	require.Len(t, headers, 2)
	assert.Contains(t, headers[0], AccessCookie+"=;")
	assert.Contains(t, headers[0], "Max-Age=0")
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/b/avatars/u1/x.png", PublicURL("b", "avatars/u1/x.png"))
}
