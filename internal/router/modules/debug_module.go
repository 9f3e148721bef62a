package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/feedback-board/internal/container"
	handlers "github.com/oksasatya/feedback-board/internal/interface/http"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
)

// DebugModule exposes /healthz and, when enabled, the expvar counters.
type DebugModule struct {
	Health *handlers.HealthHandler
	C      *container.Container
}

func NewDebugModule(h *handlers.HealthHandler, c *container.Container) *DebugModule {
	return &DebugModule{Health: h, C: c}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if !m.C.Config.DebugMetricsEnabled {
		return
	}
	rl := m.C.Limiter(120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
