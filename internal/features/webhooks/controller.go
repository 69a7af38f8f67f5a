package webhooks

import (
	"net/http"
	"strconv"
	"strings"

	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/gateway"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WebhookController struct {
	webhookService *WebhookService
}

func (c *WebhookController) RegisterRoutes(router *gin.RouterGroup) {
	webhookRoutes := router.Group("/webhooks")

	webhookRoutes.GET("", gateway.RequireScope(api_keys.ScopeWriteWebhooks), c.ListSubscriptions)
	webhookRoutes.POST("", gateway.RequireScope(api_keys.ScopeWriteWebhooks), c.Subscribe)
	webhookRoutes.DELETE("/:subscriptionId", gateway.RequireScope(api_keys.ScopeWriteWebhooks), c.Unsubscribe)
	webhookRoutes.GET("/poll/bookmarks", gateway.RequireScope(api_keys.ScopeReadBookmarks), c.PollBookmarks)
}

// Subscribe
// @Summary Subscribe a target URL to an event
// @Tags webhooks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SubscribeRequestDTO true "Subscription data"
// @Success 201 {object} WebhookSubscription
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /webhooks [post]
func (c *WebhookController) Subscribe(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	var request SubscribeRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	subscription, err := c.webhookService.Subscribe(authContext.UserID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, subscription)
}

// Unsubscribe
// @Summary Remove a subscription
// @Tags webhooks
// @Security ApiKeyAuth
// @Param subscriptionId path string true "Subscription ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/{subscriptionId} [delete]
func (c *WebhookController) Unsubscribe(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	subscriptionID, err := uuid.Parse(ctx.Param("subscriptionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	if err := c.webhookService.Unsubscribe(subscriptionID, authContext.UserID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}

// ListSubscriptions
// @Summary List subscriptions
// @Tags webhooks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} GetSubscriptionsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /webhooks [get]
func (c *WebhookController) ListSubscriptions(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	response, err := c.webhookService.ListSubscriptions(authContext.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// PollBookmarks
// @Summary Poll recent bookmarks for integrations
// @Tags webhooks
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum bookmarks to return"
// @Success 200 {array} bookmarks.Bookmark
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /webhooks/poll/bookmarks [get]
func (c *WebhookController) PollBookmarks(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "25"))

	recent, err := c.webhookService.PollRecentBookmarks(authContext.UserID, limit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, recent)
}
