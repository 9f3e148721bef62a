package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/feedback-board/internal/container"
	"github.com/oksasatya/feedback-board/internal/domain/entity"
	handlers "github.com/oksasatya/feedback-board/internal/interface/http"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
)

// AuthModule mounts /auth: public register/login/logout, the admin user
// directory and avatar upload.
type AuthModule struct {
	Auth  *handlers.AuthHandler
	Users *handlers.UserHandler
	C     *container.Container
}

func NewAuthModule(auth *handlers.AuthHandler, users *handlers.UserHandler, c *container.Container) *AuthModule {
	return &AuthModule{Auth: auth, Users: users, C: c}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := m.C.Limiter(10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := m.C.Limiter(10, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auth")
	g.POST("/register", registerLimiter, m.Auth.Register)
	g.POST("/login", loginLimiter, m.Auth.Login)
	g.GET("/logout", m.Auth.Logout)

	authed := g.Group("")
	authed.Use(m.C.Authenticate())
	{
		avatarLimiter := m.C.Limiter(5, time.Minute, middleware.KeyByUserID(), nil)
		authed.POST("/avatar", avatarLimiter, m.Users.UploadAvatar)
	}

	admin := g.Group("")
	admin.Use(m.C.Authenticate(), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("", m.Users.List)
		admin.PATCH("/update-user", m.Users.Update)
		admin.DELETE("/delete-user/:id", m.Users.Delete)
	}
}
