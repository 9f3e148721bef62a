package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/feedback-board/internal/container"
	"github.com/oksasatya/feedback-board/internal/domain/entity"
	handlers "github.com/oksasatya/feedback-board/internal/interface/http"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
)

type SuggestionModule struct {
	Handler *handlers.SuggestionHandler
	C       *container.Container
}

func NewSuggestionModule(h *handlers.SuggestionHandler, c *container.Container) *SuggestionModule {
	return &SuggestionModule{Handler: h, C: c}
}

func (m *SuggestionModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/suggestions")

	searchLimiter := m.C.Limiter(60, time.Minute, middleware.KeyByIP(), nil)
	g.GET("", m.Handler.List)
	g.GET("/search", searchLimiter, m.Handler.Search)
	g.GET("/:id", m.Handler.Get)

	authed := g.Group("")
	authed.Use(m.C.Authenticate(), m.C.Limiter(120, time.Minute, middleware.KeyByUserID(), nil))
	{
		authed.POST("", m.Handler.Create)
		authed.PATCH("/:id", m.Handler.Update)
		authed.DELETE("/:id", m.Handler.Delete)
		authed.PATCH("/upvote/:id", m.Handler.Upvote)
		authed.PATCH("/comment/:id", m.Handler.CreateComment)
		authed.DELETE("/comment/:id", m.Handler.DeleteComment)
		authed.PATCH("/reply/:id", m.Handler.CreateReply)
		authed.DELETE("", middleware.RequireRole(entity.RoleAdmin), m.Handler.DeleteAll)
	}
}
