package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/pkg/helpers"
	"github.com/oksasatya/feedback-board/pkg/response"
)

const CtxUserKey = "user"

// Authenticate resolves the caller from the auth cookies. A valid access
// token is enough; otherwise a valid refresh token is accepted and a fresh
// pair is written back, extending the session.
func Authenticate(jwt *helpers.JWTManager, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(helpers.AccessCookie); err == nil && token != "" {
			if claims, err := jwt.ParseAccessToken(token); err == nil {
				c.Set(CtxUserKey, claims.User)
				c.Next()
				return
			}
		}

		token, err := c.Cookie(helpers.RefreshCookie)
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication invalid", nil)
			return
		}
		claims, err := jwt.ParseRefreshToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Authentication invalid", nil)
			return
		}

		access, aexp, err := jwt.GenerateAccessToken(claims.User)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Authentication invalid", nil)
			return
		}
		refresh, rexp, err := jwt.GenerateRefreshToken(claims.User)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Authentication invalid", nil)
			return
		}
		cookies.SetPair(c, access, aexp, refresh, rexp)
		c.Set(CtxUserKey, claims.User)
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if ok {
			for _, r := range roles {
				if u.Role == r {
					c.Next()
					return
				}
			}
		}
		response.Error(c, http.StatusForbidden, "Unauthorized to access this route", nil)
	}
}

// CurrentUser returns the identity set by Authenticate.
func CurrentUser(c *gin.Context) (entity.TokenUser, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return entity.TokenUser{}, false
	}
	u, ok := v.(entity.TokenUser)
	return u, ok
}
