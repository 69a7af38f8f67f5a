package collections

import (
	"net/http"
	"strings"

	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/gateway"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollectionController struct {
	collectionService *CollectionService
}

func (c *CollectionController) RegisterRoutes(router *gin.RouterGroup) {
	collectionRoutes := router.Group("/collections")

	collectionRoutes.GET("", gateway.RequireScope(api_keys.ScopeReadCollections), c.ListCollections)
	collectionRoutes.GET("/:collectionId", gateway.RequireScope(api_keys.ScopeReadCollections), c.GetCollection)
	collectionRoutes.POST("", gateway.RequireScope(api_keys.ScopeWriteCollections), c.CreateCollection)
	collectionRoutes.PUT("/:collectionId", gateway.RequireScope(api_keys.ScopeWriteCollections), c.UpdateCollection)
	collectionRoutes.DELETE("/:collectionId", gateway.RequireScope(api_keys.ScopeWriteCollections), c.DeleteCollection)
}

// CreateCollection
// @Summary Create a collection
// @Tags collections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateCollectionRequestDTO true "Collection data"
// @Success 201 {object} Collection
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /collections [post]
func (c *CollectionController) CreateCollection(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	var request CreateCollectionRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	collection, err := c.collectionService.CreateCollection(authContext.UserID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, collection)
}

// ListCollections
// @Summary List collections
// @Tags collections
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} GetCollectionsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /collections [get]
func (c *CollectionController) ListCollections(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	response, err := c.collectionService.ListCollections(authContext.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCollection
// @Summary Get a collection
// @Tags collections
// @Produce json
// @Security ApiKeyAuth
// @Param collectionId path string true "Collection ID"
// @Success 200 {object} Collection
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /collections/{collectionId} [get]
func (c *CollectionController) GetCollection(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	collectionID, err := uuid.Parse(ctx.Param("collectionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return
	}

	collection, err := c.collectionService.GetCollection(collectionID, authContext.UserID)
	if err != nil {
		respondCollectionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, collection)
}

// UpdateCollection
// @Summary Update a collection
// @Tags collections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param collectionId path string true "Collection ID"
// @Param request body UpdateCollectionRequestDTO true "Fields to update"
// @Success 200 {object} Collection
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /collections/{collectionId} [put]
func (c *CollectionController) UpdateCollection(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	collectionID, err := uuid.Parse(ctx.Param("collectionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return
	}

	var request UpdateCollectionRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	collection, err := c.collectionService.UpdateCollection(collectionID, authContext.UserID, &request)
	if err != nil {
		respondCollectionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, collection)
}

// DeleteCollection
// @Summary Delete a collection, detaching its bookmarks
// @Tags collections
// @Security ApiKeyAuth
// @Param collectionId path string true "Collection ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /collections/{collectionId} [delete]
func (c *CollectionController) DeleteCollection(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	collectionID, err := uuid.Parse(ctx.Param("collectionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
		return
	}

	if err := c.collectionService.DeleteCollection(collectionID, authContext.UserID); err != nil {
		respondCollectionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}

func respondCollectionError(ctx *gin.Context, err error) {
	if strings.Contains(err.Error(), "not found") {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
