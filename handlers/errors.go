package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

const (
	kindEngineError = "engine_error"
	kindValidation  = "validation"
	kindNotFound    = "not_found"
	kindConflict    = "conflict"
	kindInternal    = "internal"
)

func diagnosticsURL(companyId string) string {
	return fmt.Sprintf("/api/companies/%s/diagnostics", url.PathEscape(companyId))
}

// writeEngineError answers a request the engine could not run for. A report with
// issues is never an error.
func writeEngineError(c *gin.Context, companyId string, err error) {
	_ = c.Error(err)
	status, code := http.StatusServiceUnavailable, "data_unavailable"
	if compliance.IsCompanyNotFound(err) {
		status, code = http.StatusNotFound, "company_not_found"
	}
	c.JSON(status, gin.H{
		"error":       err.Error(),
		"kind":        kindEngineError,
		"code":        code,
		"diagnostics": diagnosticsURL(companyId),
	})
}

// writeModelError maps accessor errors onto the HTTP error contract.
func writeModelError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid input",
			"kind":    kindValidation,
			"details": utils.ProcessValidationErrors(err),
		})
	case errors.Is(err, utils.ErrInvalidInput):
		writeBadRequest(c, err)
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found", "kind": kindNotFound})
	case errors.Is(err, utils.ErrLockNotObtained):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": kindConflict})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": kindInternal})
	}
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": kindValidation})
}
