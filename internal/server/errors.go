package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/wellness"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, wellness.ErrInvalidInput),
		errors.Is(err, wellness.ErrIncompleteAssessment),
		errors.Is(err, wellness.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, wellness.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, wellness.ErrAssessmentRequired),
		errors.Is(err, wellness.ErrNoGroup):
		return http.StatusForbidden
	case errors.Is(err, wellness.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, wellness.ErrNicknameTaken),
		errors.Is(err, wellness.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail aborts with a JSON error. Internal errors are logged and hidden.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("handler failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
}
