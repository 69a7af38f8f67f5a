package api_keys

import (
	"net/http"
	"strings"

	users_middleware "hittags/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiKeyController struct {
	apiKeyService *ApiKeyService
}

func (c *ApiKeyController) RegisterRoutes(router *gin.RouterGroup) {
	apiKeyRoutes := router.Group("/api-keys")

	apiKeyRoutes.POST("", c.CreateApiKey)
	apiKeyRoutes.GET("", c.GetApiKeys)
	apiKeyRoutes.DELETE("/:apiKeyId", c.RevokeApiKey)
}

// CreateApiKey
// @Summary Create a new API key
// @Description Create an API key; the secret is returned exactly once
// @Tags api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateApiKeyRequestDTO true "API key creation data"
// @Success 200 {object} ApiKey
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api-keys [post]
func (c *ApiKeyController) CreateApiKey(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateApiKeyRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.apiKeyService.CreateApiKey(user, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetApiKeys
// @Summary List API keys
// @Description Get the caller's API keys, revoked ones included
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GetApiKeysResponseDTO
// @Failure 401 {object} map[string]string
// @Router /api-keys [get]
func (c *ApiKeyController) GetApiKeys(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.apiKeyService.GetUserApiKeys(user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RevokeApiKey
// @Summary Revoke an API key
// @Description Soft-revoke a key; its credentials stop validating immediately
// @Tags api-keys
// @Security BearerAuth
// @Param apiKeyId path string true "API Key ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api-keys/{apiKeyId} [delete]
func (c *ApiKeyController) RevokeApiKey(ctx *gin.Context) {
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

	if err := c.apiKeyService.RevokeApiKey(apiKeyID, user); err != nil {
		if strings.Contains(err.Error(), "not found") {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "API key revoked successfully"})
}
