package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

// CompanyScopeMiddleware puts the :companyId route parameter into the request
// context, where the gorm company scope plugin picks it up.
func CompanyScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyId := strings.TrimSpace(c.Param("companyId"))
		if companyId == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "company id is required", "kind": "validation"})
			return
		}
		ctx := utils.SetCompanyIdInContext(c.Request.Context(), companyId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
