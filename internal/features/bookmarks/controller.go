package bookmarks

import (
	"net/http"
	"strings"

	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/gateway"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookmarkController struct {
	bookmarkService *BookmarkService
}

func (c *BookmarkController) RegisterRoutes(router *gin.RouterGroup) {
	bookmarkRoutes := router.Group("/bookmarks")

	bookmarkRoutes.GET("", gateway.RequireScope(api_keys.ScopeReadBookmarks), c.ListBookmarks)
	bookmarkRoutes.GET("/:bookmarkId", gateway.RequireScope(api_keys.ScopeReadBookmarks), c.GetBookmark)
	bookmarkRoutes.POST("", gateway.RequireScope(api_keys.ScopeWriteBookmarks), c.CreateBookmark)
	bookmarkRoutes.PUT("/:bookmarkId", gateway.RequireScope(api_keys.ScopeWriteBookmarks), c.UpdateBookmark)
	bookmarkRoutes.DELETE("/:bookmarkId", gateway.RequireScope(api_keys.ScopeDeleteBookmarks), c.DeleteBookmark)

	router.GET("/tags", gateway.RequireScope(api_keys.ScopeReadTags), c.ListTags)
}

// CreateBookmark
// @Summary Create a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateBookmarkRequestDTO true "Bookmark data"
// @Success 201 {object} Bookmark
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookmarks [post]
func (c *BookmarkController) CreateBookmark(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	var request CreateBookmarkRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bookmark, err := c.bookmarkService.CreateBookmark(authContext.UserID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, bookmark)
}

// ListBookmarks
// @Summary List bookmarks
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param tag query string false "Filter by tag"
// @Param collectionId query string false "Filter by collection"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} GetBookmarksResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookmarks [get]
func (c *BookmarkController) ListBookmarks(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	var query ListBookmarksQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	response, err := c.bookmarkService.ListBookmarks(authContext.UserID, &query)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetBookmark
// @Summary Get a bookmark
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param bookmarkId path string true "Bookmark ID"
// @Success 200 {object} Bookmark
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookmarks/{bookmarkId} [get]
func (c *BookmarkController) GetBookmark(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	bookmarkID, err := uuid.Parse(ctx.Param("bookmarkId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	bookmark, err := c.bookmarkService.GetBookmark(bookmarkID, authContext.UserID)
	if err != nil {
		respondBookmarkError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookmark)
}

// UpdateBookmark
// @Summary Update a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param bookmarkId path string true "Bookmark ID"
// @Param request body UpdateBookmarkRequestDTO true "Fields to update"
// @Success 200 {object} Bookmark
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookmarks/{bookmarkId} [put]
func (c *BookmarkController) UpdateBookmark(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	bookmarkID, err := uuid.Parse(ctx.Param("bookmarkId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	var request UpdateBookmarkRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bookmark, err := c.bookmarkService.UpdateBookmark(bookmarkID, authContext.UserID, &request)
	if err != nil {
		respondBookmarkError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookmark)
}

// DeleteBookmark
// @Summary Delete a bookmark
// @Tags bookmarks
// @Security ApiKeyAuth
// @Param bookmarkId path string true "Bookmark ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookmarks/{bookmarkId} [delete]
func (c *BookmarkController) DeleteBookmark(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	bookmarkID, err := uuid.Parse(ctx.Param("bookmarkId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	if err := c.bookmarkService.DeleteBookmark(bookmarkID, authContext.UserID); err != nil {
		respondBookmarkError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Bookmark deleted successfully"})
}

// ListTags
// @Summary List distinct tags
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} GetTagsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tags [get]
func (c *BookmarkController) ListTags(ctx *gin.Context) {
	authContext, ok := gateway.GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
		return
	}

	response, err := c.bookmarkService.ListTags(authContext.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func respondBookmarkError(ctx *gin.Context, err error) {
	if strings.Contains(err.Error(), "not found") {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
