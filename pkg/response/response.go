package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/feedback-board/pkg/apperror"
)

// ErrorBody is the envelope written for every failed request.
type ErrorBody struct {
	Success   bool        `json:"success"`
	Msg       string      `json:"msg"`
	RequestID string      `json:"request_id,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes payload with success:true merged in. A zero status means 200.
func Success(c *gin.Context, status int, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// JSON writes a read payload as is.
func JSON(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, payload)
}

// Error aborts the request with the error envelope.
func Error(c *gin.Context, status int, msg string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Success:   false,
		Msg:       msg,
		RequestID: c.GetString("request_id"),
		Error:     details,
	})
}

// FromError maps err onto the envelope. Server side failures are logged
// with the request id and reported with a generic message.
func FromError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"method":     c.Request.Method,
		}).WithError(err).Error("request failed")
	}
	Error(c, status, apperror.PublicMessage(err), nil)
}
