package handler

import (
	"slices"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/abhishek622/interviewPrep/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	response.OK(c, gin.H{
		"status":         "ok",
		"remote_enabled": h.Sessions.RemoteEnabled(),
	})
}

func (h *Handler) ListRoles(c *gin.Context) {
	response.OK(c, model.CatalogRes{
		Roles:        model.Roles,
		Domains:      model.Domains,
		Modes:        model.Modes,
		Difficulties: model.Difficulties,
	})
}

// RoleTopics lists the topics of a role. Unknown roles get the default
// role's topics and no samples.
func (h *Handler) RoleTopics(c *gin.Context) {
	role := model.Role(c.Param("role"))
	mode := model.InterviewMode(c.DefaultQuery("mode", string(model.ModeTechnical)))
	if !slices.Contains(model.Modes, mode) {
		response.BadRequest(c, "mode must be Technical or Behavioral")
		return
	}

	catalog := h.Sessions.Catalog()
	resolved, _ := catalog.Resolve(role)
	samples := catalog.Samples(role, mode)
	if samples == nil {
		samples = []string{}
	}

	response.OK(c, model.TopicsRes{
		Role:            role,
		ResolvedRole:    resolved,
		Mode:            mode,
		Topics:          catalog.Topics(role, mode),
		SampleQuestions: samples,
	})
}
