package usage

import (
	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/util/logger"
	rate_limit "hittags/internal/util/rate_limit"
)

var usageRepository = &UsageRepository{}

var usageService = &UsageService{
	usageRepository: usageRepository,
	apiKeyService:   api_keys.GetApiKeyService(),
	rateLimiter:     rate_limit.NewRateLimiter(),
	logger:          logger.GetLogger(),
}

var usageController = &UsageController{
	usageService,
}

func GetUsageService() *UsageService {
	return usageService
}

func GetUsageController() *UsageController {
	return usageController
}
