package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.RequestLogger())
	r.Use(app.CORSMiddleware())

	h := app.Handler
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)
		v1.GET("/roles", h.ListRoles)
		v1.GET("/roles/:role/topics", h.RoleTopics)
	}

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.StartSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/next", h.NextQuestion)
		sessions.POST("/:id/skip", h.SkipQuestion)
		sessions.POST("/:id/answers", h.SubmitAnswer)
		sessions.POST("/:id/finish", h.FinishSession)
		sessions.GET("/:id/export", h.ExportSession)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
	}

	return r
}
