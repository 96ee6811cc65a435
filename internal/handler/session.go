package handler

import (
	"github.com/abhishek622/interviewPrep/internal/interview"
	"github.com/abhishek622/interviewPrep/pkg"
	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/abhishek622/interviewPrep/pkg/response"
	"github.com/gin-gonic/gin"
)

func questionRes(s *model.Session) model.QuestionRes {
	return model.QuestionRes{
		SessionID:      s.SessionID,
		QuestionNumber: s.QuestionCount,
		TotalQuestions: s.TotalQuestions,
		Question:       s.CurrentQuestion,
		IsLast:         s.QuestionCount >= s.TotalQuestions,
	}
}

func (h *Handler) StartSession(c *gin.Context) {
	var req model.StartSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.Sessions.Start(c.Request.Context(), req)
	if err != nil {
		h.sessionError(c, "start", err)
		return
	}
	response.Created(c, questionRes(sess))
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, "get", err)
		return
	}
	response.OK(c, sess)
}

func (h *Handler) NextQuestion(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Next(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, "next", err)
		return
	}
	response.OK(c, questionRes(sess))
}

func (h *Handler) SkipQuestion(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Skip(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, "skip", err)
		return
	}
	response.OK(c, questionRes(sess))
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req model.SubmitAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.Sessions.SubmitAnswer(c.Request.Context(), id, req.Answer)
	if err != nil {
		h.sessionError(c, "answer", err)
		return
	}
	response.OK(c, model.AnswerRes{
		SessionID: id,
		Entry:     entry,
		Band:      interview.Band(entry.Score),
	})
}

func (h *Handler) FinishSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	res, err := h.Sessions.Finish(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, "finish", err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) ExportSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	exp, err := h.Sessions.Export(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, "export", err)
		return
	}
	response.Attachment(c, pkg.ReportFilename(string(exp.Role), exp.Date), exp)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.Sessions.Delete(c.Request.Context(), id); err != nil {
		h.sessionError(c, "delete", err)
		return
	}
	response.NoContent(c)
}
