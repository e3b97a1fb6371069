package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/models/reports"
	"github.com/mmdatafocus/schedule3_backend/models/statements"
)

func complianceReportHandler(engine *compliance.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyId := c.Param("companyId")
		report, err := engine.Run(c.Request.Context(), companyId)
		if err != nil {
			writeEngineError(c, companyId, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func noteStatusHandler(engine *compliance.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyId := c.Param("companyId")
		status, err := engine.CheckNote(c.Request.Context(), companyId, c.Param("noteRef"))
		if errors.Is(err, compliance.ErrUnknownNote) {
			writeBadRequest(c, fmt.Errorf("%w: %s", err, c.Param("noteRef")))
			return
		}
		if err != nil {
			writeEngineError(c, companyId, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func complianceExportHandler(engine *compliance.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyId := c.Param("companyId")
		ctx := c.Request.Context()
		report, snapshot, err := engine.RunWithSnapshot(ctx, companyId)
		if err != nil {
			writeEngineError(c, companyId, err)
			return
		}

		filename := fmt.Sprintf("compliance-%s-%s.xlsx", companyId, report.AsOf.Format("20060102"))
		c.Header("Content-Type", reports.XlsxContentType)
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Status(http.StatusOK)
		if err := reports.WriteWorkbook(ctx, c.Writer, report, snapshot.Statements, statements.NewFormatOptions(snapshot.Entity)); err != nil {
			_ = c.Error(err)
		}
	}
}

func diagnosticsHandler(diagnostics *compliance.Diagnostics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, diagnostics.Run(c.Request.Context(), c.Param("companyId")))
	}
}

type statementsResponse struct {
	CompanyId  string                          `json:"company_id"`
	Formatted  *statements.FormattedStatements `json:"formatted"`
	Statements *statements.Statements          `json:"statements"`
}

func statementsHandler(engine *compliance.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyId := c.Param("companyId")
		snapshot, err := engine.Snapshot(c.Request.Context(), companyId)
		if err != nil {
			writeEngineError(c, companyId, err)
			return
		}
		c.JSON(http.StatusOK, statementsResponse{
			CompanyId:  companyId,
			Formatted:  statements.Format(snapshot.Statements, statements.NewFormatOptions(snapshot.Entity)),
			Statements: snapshot.Statements,
		})
	}
}
