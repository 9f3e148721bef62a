package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/feedback-board/internal/application"
	"github.com/oksasatya/feedback-board/pkg/response"
)

type RoadmapHandler struct {
	Svc    *application.RoadmapService
	Logger *logrus.Logger
}

func NewRoadmapHandler(svc *application.RoadmapService, logger *logrus.Logger) *RoadmapHandler {
	return &RoadmapHandler{Svc: svc, Logger: logger}
}

// Counts GET /api/roadmap
func (h *RoadmapHandler) Counts(c *gin.Context) {
	counts, err := h.Svc.Counts(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, gin.H{"roadmap": counts})
}

// Full GET /api/roadmap/full
func (h *RoadmapHandler) Full(c *gin.Context) {
	board, err := h.Svc.Full(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, gin.H{"roadmap": board})
}
