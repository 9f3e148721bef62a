package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/feedback-board/internal/interface/http"
)

type RoadmapModule struct {
	Handler *handlers.RoadmapHandler
}

func NewRoadmapModule(h *handlers.RoadmapHandler) *RoadmapModule {
	return &RoadmapModule{Handler: h}
}

func (m *RoadmapModule) Register(rg *gin.RouterGroup) {
	rg.GET("/roadmap", m.Handler.Counts)
	rg.GET("/roadmap/full", m.Handler.Full)
}
