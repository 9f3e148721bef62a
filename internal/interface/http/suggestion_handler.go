package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/feedback-board/internal/application"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
	"github.com/oksasatya/feedback-board/pkg/response"
	"github.com/oksasatya/feedback-board/pkg/validation"
)

type SuggestionHandler struct {
	Svc    *application.SuggestionService
	Logger *logrus.Logger
}

func NewSuggestionHandler(svc *application.SuggestionService, logger *logrus.Logger) *SuggestionHandler {
	return &SuggestionHandler{Svc: svc, Logger: logger}
}

type createSuggestionRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Status      string `json:"status" binding:"omitempty,suggestion_status"`
	Category    string `json:"category" binding:"omitempty,suggestion_category"`
}

type updateSuggestionRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Status      *string `json:"status" binding:"omitempty,suggestion_status"`
	Category    *string `json:"category" binding:"omitempty,suggestion_category"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type replyRequest struct {
	Content    string `json:"content" binding:"required,max=2000"`
	ReplyingTo string `json:"replyingTo"`
}

func (h *SuggestionHandler) badRequest(c *gin.Context, err error) {
	details := validation.ToDetails(err)
	response.Error(c, http.StatusBadRequest, validation.Message(details), details)
}

// List GET /api/suggestions?c=&s=&p=
func (h *SuggestionHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), application.ListParams{
		Category: c.Query("c"),
		Sort:     c.Query("s"),
		Page:     c.Query("p"),
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search GET /api/suggestions/search?q=&size=
func (h *SuggestionHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, gin.H{"suggestions": hits})
}

// Get GET /api/suggestions/:id
func (h *SuggestionHandler) Get(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, gin.H{"suggestion": s})
}

// Create POST /api/suggestions
func (h *SuggestionHandler) Create(c *gin.Context) {
	var req createSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	actor, _ := middleware.CurrentUser(c)
	s, err := h.Svc.Create(c.Request.Context(), application.CreateSuggestionInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Category:    req.Category,
	}, actor)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"suggestion": s})
}

// Update PATCH /api/suggestions/:id
func (h *SuggestionHandler) Update(c *gin.Context) {
	var req updateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	actor, _ := middleware.CurrentUser(c)
	s, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.SuggestionPatchInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Category:    req.Category,
	}, actor)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": s})
}

// Delete DELETE /api/suggestions/:id
func (h *SuggestionHandler) Delete(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// DeleteAll DELETE /api/suggestions
func (h *SuggestionHandler) DeleteAll(c *gin.Context) {
	n, err := h.Svc.DeleteAll(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}

// Upvote PATCH /api/suggestions/upvote/:id
func (h *SuggestionHandler) Upvote(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	s, err := h.Svc.ToggleUpvote(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": s})
}

// CreateComment PATCH /api/suggestions/comment/:id
func (h *SuggestionHandler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	actor, _ := middleware.CurrentUser(c)
	s, err := h.Svc.CreateComment(c.Request.Context(), c.Param("id"), req.Content, actor)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": s})
}

// DeleteComment DELETE /api/suggestions/comment/:id
func (h *SuggestionHandler) DeleteComment(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	s, err := h.Svc.DeleteComment(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": s})
}

// CreateReply PATCH /api/suggestions/reply/:id
func (h *SuggestionHandler) CreateReply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	actor, _ := middleware.CurrentUser(c)
	s, err := h.Svc.CreateReply(c.Request.Context(), c.Param("id"), req.Content, req.ReplyingTo, actor)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": s})
}
