package api_keys

import (
	"hittags/internal/cache"
	"hittags/internal/features/audit_logs"
	cache_utils "hittags/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var apiKeyRepository = &ApiKeyRepository{}

var apiKeyService = &ApiKeyService{
	apiKeyRepository,
	audit_logs.GetAuditLogService(),
	cache_utils.NewCacheUtil[CachedApiKey](cache.GetCache(), "ht_apikey:"),
	singleflight.Group{},
}

var apiKeyController = &ApiKeyController{
	apiKeyService,
}

func GetApiKeyService() *ApiKeyService {
	return apiKeyService
}

func GetApiKeyController() *ApiKeyController {
	return apiKeyController
}
