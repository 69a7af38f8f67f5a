package usage

import (
	"net/http"
	"strconv"
	"strings"

	users_middleware "hittags/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsageController struct {
	usageService *UsageService
}

func (c *UsageController) RegisterRoutes(router *gin.RouterGroup) {
	usageRoutes := router.Group("/api-keys/:apiKeyId/usage")

	usageRoutes.GET("/stats", c.GetKeyUsageStats)
	usageRoutes.GET("/records", c.GetKeyUsageRecords)
}

// GetKeyUsageStats
// @Summary Get usage stats for an API key
// @Tags usage
// @Produce json
// @Security BearerAuth
// @Param apiKeyId path string true "API Key ID"
// @Success 200 {object} KeyUsageStatsDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api-keys/{apiKeyId}/usage/stats [get]
func (c *UsageController) GetKeyUsageStats(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	apiKeyID, err := uuid.Parse(ctx.Param("apiKeyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	stats, err := c.usageService.GetKeyUsageStats(apiKeyID, user)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetKeyUsageRecords
// @Summary List usage records for an API key
// @Tags usage
// @Produce json
// @Security BearerAuth
// @Param apiKeyId path string true "API Key ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} GetUsageRecordsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api-keys/{apiKeyId}/usage/records [get]
func (c *UsageController) GetKeyUsageRecords(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	apiKeyID, err := uuid.Parse(ctx.Param("apiKeyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	response, err := c.usageService.GetKeyUsageRecords(apiKeyID, user, limit, offset)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
