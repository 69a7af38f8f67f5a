package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
}

// GetHealth
// @Summary Report service health
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /health [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	status := c.healthcheckService.GetHealthStatus()

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, status)
}
