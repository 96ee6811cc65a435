package handler

import (
	"errors"

	"github.com/abhishek622/interviewPrep/internal/repository"
	"github.com/abhishek622/interviewPrep/internal/session"
	"github.com/abhishek622/interviewPrep/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Logger   *zap.Logger
	Sessions *session.Service
	// Reports is nil when no report store is configured.
	Reports repository.ReportRepository
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// sessionError maps service errors to responses.
func (h *Handler) sessionError(c *gin.Context, op string, err error) {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(c, verr.Message)
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(c, "session not found")
	default:
		h.Logger.Error("session operation failed", zap.String("op", op), zap.Error(err))
		response.InternalError(c, "")
	}
}
