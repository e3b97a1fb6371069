// Package handlers exposes the compliance engine and its supporting data over HTTP.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/middlewares"
)

type Deps struct {
	Engine      *compliance.Engine
	Diagnostics *compliance.Diagnostics
}

// RegisterRoutes mounts the company API under /api/companies/:companyId.
func RegisterRoutes(r gin.IRouter, deps Deps) {
	company := r.Group("/api/companies/:companyId")
	company.Use(middlewares.CompanyScopeMiddleware())
	company.Use(middlewares.LoaderMiddleware())

	company.GET("/compliance", complianceReportHandler(deps.Engine))
	company.GET("/compliance/notes/:noteRef", noteStatusHandler(deps.Engine))
	company.GET("/compliance/export", complianceExportHandler(deps.Engine))
	company.GET("/diagnostics", diagnosticsHandler(deps.Diagnostics))
	company.GET("/statements", statementsHandler(deps.Engine))
	company.GET("/trial-balance", trialBalanceHandler())
	company.GET("/entity", getEntityHandler())
	company.PUT("/entity", updateEntityHandler())
	company.GET("/notes", listNotesHandler())
	company.PUT("/notes", saveNotesHandler())
	company.POST("/notes/init", initNotesHandler())
	company.POST("/notes/auto-number", autoNumberNotesHandler())
}
