package handler

import (
	"errors"

	"github.com/abhishek622/interviewPrep/internal/repository"
	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/abhishek622/interviewPrep/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxPageSize = 100

func (h *Handler) ListReports(c *gin.Context) {
	if h.Reports == nil {
		response.NotFound(c, "report storage is not configured")
		return
	}

	var q model.ListReportsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.Page < 1 || q.PageSize < 1 || q.PageSize > maxPageSize {
		response.BadRequest(c, "page must be >= 1 and page_size between 1 and 100")
		return
	}

	reports, total, err := h.Reports.ListReports(c.Request.Context(), q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		h.Logger.Error("failed to list reports", zap.Error(err))
		response.InternalError(c, "")
		return
	}
	response.OKWithMeta(c, reports, response.NewMeta(q.Page, q.PageSize, total))
}

func (h *Handler) GetReport(c *gin.Context) {
	if h.Reports == nil {
		response.NotFound(c, "report storage is not configured")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid report ID")
		return
	}

	rep, err := h.Reports.GetReport(c.Request.Context(), id)
	if errors.Is(err, repository.ErrReportNotFound) {
		response.NotFound(c, "report not found")
		return
	}
	if err != nil {
		h.Logger.Error("failed to get report", zap.String("report_id", id.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}
	response.OK(c, rep)
}
