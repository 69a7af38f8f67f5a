package gateway

import (
	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/usage"
	"hittags/internal/util/logger"

	"github.com/gin-gonic/gin"
)

func GetAuthMiddleware() gin.HandlerFunc {
	return AuthMiddleware(
		api_keys.GetApiKeyService(),
		usage.GetUsageService(),
		logger.GetLogger(),
	)
}
