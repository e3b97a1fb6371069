package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/utils"
	"github.com/sirupsen/logrus"
)

// ErrorLoggerMiddleware logs the errors handlers attached with c.Error, and every 5xx.
func ErrorLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		if len(c.Errors) == 0 && status < 500 {
			return
		}
		ctx := c.Request.Context()
		companyId, _ := utils.GetCompanyIdFromContext(ctx)
		correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
		entry := config.GetLogger().WithFields(logrus.Fields{
			"module":         "http",
			"method":         c.Request.Method,
			"path":           c.FullPath(),
			"status":         status,
			"company_id":     companyId,
			"correlation_id": correlationId,
			"duration_ms":    time.Since(started).Milliseconds(),
		})
		if len(c.Errors) == 0 {
			entry.Error("request failed")
			return
		}
		for _, e := range c.Errors {
			entry.WithError(e.Err).Error("request failed")
		}
	}
}
