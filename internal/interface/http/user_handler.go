package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/feedback-board/internal/application"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
	"github.com/oksasatya/feedback-board/pkg/helpers"
	"github.com/oksasatya/feedback-board/pkg/response"
	"github.com/oksasatya/feedback-board/pkg/validation"
)

const maxAvatarBytes = 5 << 20

// UserHandler serves the admin user directory and avatar upload.
type UserHandler struct {
	Svc     *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type updateUserRequest struct {
	ID        string  `json:"id" binding:"required"`
	Username  *string `json:"username" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Firstname *string `json:"firstname" binding:"omitempty,max=50"`
	Lastname  *string `json:"lastname" binding:"omitempty,max=50"`
	Role      *string `json:"role" binding:"omitempty,role"`
	Image     *string `json:"image" binding:"omitempty,url"`
	Password  *string `json:"password" binding:"omitempty,pwd"`
}

// List GET /api/auth
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, gin.H{"users": users})
}

// Update PATCH /api/auth/update-user
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, validation.Message(details), details)
		return
	}
	user, err := h.Svc.Update(c.Request.Context(), application.UpdateUserInput{
		ID:        req.ID,
		Username:  req.Username,
		Email:     req.Email,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      req.Role,
		Image:     req.Image,
		Password:  req.Password,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Delete DELETE /api/auth/delete-user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"msg": "user deleted"})
}

// UploadAvatar POST /api/auth/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload an image file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload an image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	user, err := h.Svc.UploadAvatar(c.Request.Context(), actor.UserID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	// Tokens carry the image, so the session is reissued with the new one.
	pair, err := h.Svc.IssueTokens(user)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
