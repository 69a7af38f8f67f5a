package bookmarks

import (
	"encoding/json"
	"net/http"
	"testing"

	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/gateway"
	test_utils "hittags/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBookmarkTestRouter() *gin.Engine {
	return gateway.CreatePublicTestRouter(func(router *gin.RouterGroup) {
		GetBookmarkController().RegisterRoutes(router)
	})
}

func createFullAccessApiKey(name string) *api_keys.ApiKey {
	apiKey, _ := gateway.CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name: name,
		Scopes: []api_keys.Scope{
			api_keys.ScopeReadBookmarks,
			api_keys.ScopeWriteBookmarks,
			api_keys.ScopeDeleteBookmarks,
			api_keys.ScopeReadTags,
		},
	})

	return apiKey
}

func credential(apiKey *api_keys.ApiKey) string {
	return "Bearer " + apiKey.KeyID + "." + apiKey.Secret
}

func createTestBookmarkViaAPI(
	t *testing.T,
	router *gin.Engine,
	apiKey *api_keys.ApiKey,
	request CreateBookmarkRequestDTO,
) *Bookmark {
	t.Helper()

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/public/v1/bookmarks",
		Body:           request,
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusCreated,
	})

	var bookmark Bookmark
	require.NoError(t, json.Unmarshal(resp.Body, &bookmark))

	return &bookmark
}

func Test_CreateBookmark_WithValidRequest_BookmarkCreated(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark Create Key")

	bookmark := createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://go.dev/blog/",
		Title: "The Go Blog",
		Tags:  []string{"Go", "go", " reading "},
	})

	assert.NotEqual(t, uuid.Nil, bookmark.ID)
	assert.Equal(t, "https://go.dev/blog/", bookmark.URL)
	assert.Equal(t, "The Go Blog", bookmark.Title)
	// Tags are lowercased, trimmed and de-duplicated
	assert.Equal(t, []string{"go", "reading"}, bookmark.Tags)
}

func Test_CreateBookmark_WithInvalidURL_ReturnsBadRequest(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark Bad URL Key")

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: "POST",
		URL:    "/api/public/v1/bookmarks",
		Body: CreateBookmarkRequestDTO{
			URL:   "not-a-url",
			Title: "Broken",
		},
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusBadRequest,
	})
}

func Test_CreateBookmark_WithoutWriteScope_ReturnsForbidden(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey, _ := gateway.CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Read Only Bookmark Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: "POST",
		URL:    "/api/public/v1/bookmarks",
		Body: CreateBookmarkRequestDTO{
			URL:   "https://example.com",
			Title: "Forbidden",
		},
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusForbidden,
	})

	assert.Contains(t, string(resp.Body), string(api_keys.ScopeWriteBookmarks))
}

func Test_ListBookmarks_ReturnsOnlyOwnBookmarks(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark List Key")
	foreignKey := createFullAccessApiKey("Foreign Bookmark Key")

	createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/mine",
		Title: "Mine",
	})
	createTestBookmarkViaAPI(t, router, foreignKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/theirs",
		Title: "Theirs",
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/bookmarks",
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	var response GetBookmarksResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &response))

	assert.Equal(t, int64(1), response.Total)
	require.Len(t, response.Bookmarks, 1)
	assert.Equal(t, "Mine", response.Bookmarks[0].Title)
}

func Test_ListBookmarks_WithTagFilter_MatchesWholeTagsOnly(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark Tag Filter Key")

	createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/go",
		Title: "Go article",
		Tags:  []string{"go", "programming"},
	})
	createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/golang",
		Title: "Golang article",
		Tags:  []string{"golang"},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/bookmarks?tag=go",
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	var response GetBookmarksResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &response))

	require.Len(t, response.Bookmarks, 1)
	assert.Equal(t, "Go article", response.Bookmarks[0].Title)
}

func Test_GetBookmark_WithForeignBookmark_ReturnsNotFound(t *testing.T) {
	router := createBookmarkTestRouter()
	ownerKey := createFullAccessApiKey("Bookmark Owner Key")
	attackerKey := createFullAccessApiKey("Bookmark Attacker Key")

	bookmark := createTestBookmarkViaAPI(t, router, ownerKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/private",
		Title: "Private",
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/bookmarks/" + bookmark.ID.String(),
		AuthToken:      credential(attackerKey),
		ExpectedStatus: http.StatusNotFound,
	})

	assert.Contains(t, string(resp.Body), "bookmark not found")
}

func Test_UpdateBookmark_PartialUpdate_OnlyGivenFieldsChange(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark Update Key")

	bookmark := createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:         "https://example.com/original",
		Title:       "Original",
		Description: "Original description",
	})

	newTitle := "Updated"
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: "PUT",
		URL:    "/api/public/v1/bookmarks/" + bookmark.ID.String(),
		Body: UpdateBookmarkRequestDTO{
			Title: &newTitle,
		},
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	var updated Bookmark
	require.NoError(t, json.Unmarshal(resp.Body, &updated))

	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, "https://example.com/original", updated.URL)
	assert.Equal(t, "Original description", updated.Description)
}

func Test_DeleteBookmark_WithDeleteScope_BookmarkRemoved(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark Delete Key")

	bookmark := createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/doomed",
		Title: "Doomed",
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "DELETE",
		URL:            "/api/public/v1/bookmarks/" + bookmark.ID.String(),
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/bookmarks/" + bookmark.ID.String(),
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusNotFound,
	})
}

func Test_DeleteBookmark_WithoutDeleteScope_ReturnsForbidden(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Bookmark Writer Key")

	writeOnlyKey, _ := gateway.CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Write Only Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks, api_keys.ScopeWriteBookmarks},
	})

	bookmark := createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/protected",
		Title: "Protected",
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "DELETE",
		URL:            "/api/public/v1/bookmarks/" + bookmark.ID.String(),
		AuthToken:      credential(writeOnlyKey),
		ExpectedStatus: http.StatusForbidden,
	})

	assert.Contains(t, string(resp.Body), string(api_keys.ScopeDeleteBookmarks))
}

func Test_ListTags_ReturnsSortedDistinctTags(t *testing.T) {
	router := createBookmarkTestRouter()
	apiKey := createFullAccessApiKey("Tag List Key")

	createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/a",
		Title: "A",
		Tags:  []string{"zeta", "alpha"},
	})
	createTestBookmarkViaAPI(t, router, apiKey, CreateBookmarkRequestDTO{
		URL:   "https://example.com/b",
		Title: "B",
		Tags:  []string{"alpha", "mid"},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/tags",
		AuthToken:      credential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	var response GetTagsResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &response))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, response.Tags)
}
