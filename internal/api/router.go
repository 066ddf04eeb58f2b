package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-dashboard-wizard/internal/api/handler"
	"go-dashboard-wizard/internal/session"
	"go-dashboard-wizard/pkg/router"

	_ "go-dashboard-wizard/docs"
)

// RegisterRoutes wires the wizard HTTP surface onto the router.
func RegisterRoutes(r *router.Router, m *session.Manager) {
	handler.Setup(m)

	// Session lifecycle
	r.POST("/api/v1/sessions", handler.CreateSession)
	r.GET("/api/v1/sessions", handler.ListSessions)
	r.GET("/api/v1/sessions/*", handler.GetSession)
	r.DELETE("/api/v1/sessions/*", handler.DeleteSession)

	// Wizard steps
	r.POST("/api/v1/sessions/*/upload", handler.UploadFile)
	r.POST("/api/v1/sessions/*/clean", handler.CleanData)
	r.GET("/api/v1/sessions/*/changelog", handler.GetChangeLog)
	r.POST("/api/v1/sessions/*/restore", handler.RestoreRow)
	r.POST("/api/v1/sessions/*/undo", handler.UndoEdit)
	r.POST("/api/v1/sessions/*/redo", handler.RedoEdit)

	// Dashboard
	r.GET("/api/v1/sessions/*/filters", handler.GetFilters)
	r.PUT("/api/v1/sessions/*/filters", handler.SetFilters)
	r.GET("/api/v1/sessions/*/rows", handler.GetRows)
	r.POST("/api/v1/sessions/*/rows/next", handler.NextPage)
	r.POST("/api/v1/sessions/*/rows/previous", handler.PreviousPage)
	r.POST("/api/v1/sessions/*/dashboard", handler.GenerateDashboard)
	r.GET("/api/v1/sessions/*/dashboard", handler.GetDashboard)
	r.GET("/api/v1/sessions/*/export", handler.ExportCSV)

	// Audit trail
	r.GET("/api/v1/sessions/*/logs", handler.GetSessionLogs)
	r.GET("/api/v1/sessions/*/errors", handler.GetSessionErrors)

	// API documentation
	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)
}
