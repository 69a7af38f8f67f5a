package gateway

import (
	"net/http"
	"testing"

	api_keys "hittags/internal/features/api_keys"
	"hittags/internal/features/usage"
	test_utils "hittags/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProbeRouter() *gin.Engine {
	return CreatePublicTestRouter(func(router *gin.RouterGroup) {
		router.GET("/probe", RequireScope(api_keys.ScopeReadBookmarks), func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": true})
		})
		router.POST("/probe", RequireScope(api_keys.ScopeWriteBookmarks), func(ctx *gin.Context) {
			ctx.JSON(http.StatusCreated, gin.H{"ok": true})
		})
	})
}

func bearerCredential(apiKey *api_keys.ApiKey) string {
	return "Bearer " + apiKey.KeyID + "." + apiKey.Secret
}

func Test_AuthMiddleware_WithValidCredentials_RequestAllowed(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Valid Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	assert.Contains(t, string(resp.Body), "ok")
}

func Test_AuthMiddleware_WithXApiKeyHeader_RequestAllowed(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Header Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: "GET",
		URL:    "/api/public/v1/probe",
		Headers: map[string]string{
			"X-Api-Key": apiKey.KeyID + "." + apiKey.Secret,
		},
		ExpectedStatus: http.StatusOK,
	})
}

func Test_AuthMiddleware_WithoutCredentials_ReturnsUnauthorized(t *testing.T) {
	router := createProbeRouter()

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		ExpectedStatus: http.StatusUnauthorized,
	})

	assert.Contains(t, string(resp.Body), "invalid or missing API key")
}

func Test_AuthMiddleware_WithWrongSecret_ReturnsUniformUnauthorized(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Wrong Secret Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      "Bearer " + apiKey.KeyID + ".0000000000000000000000000000000000000000000000000000000000000000",
		ExpectedStatus: http.StatusUnauthorized,
	})

	assert.Contains(t, string(resp.Body), "invalid or expired API key")
}

func Test_AuthMiddleware_WithUnknownKeyID_SameErrorAsWrongSecret(t *testing.T) {
	router := createProbeRouter()

	// Unknown id and wrong secret must be indistinguishable
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      "Bearer ht_0000000000000000.0000000000000000000000000000000000000000000000000000000000000000",
		ExpectedStatus: http.StatusUnauthorized,
	})

	assert.Contains(t, string(resp.Body), "invalid or expired API key")
}

func Test_AuthMiddleware_WithRevokedKey_ReturnsUnauthorized(t *testing.T) {
	router := createProbeRouter()
	apiKey, owner := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Revoked Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	err := api_keys.GetApiKeyService().RevokeApiKey(apiKey.ID, owner)
	assert.NoError(t, err)

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusUnauthorized,
	})

	assert.Contains(t, string(resp.Body), "invalid or expired API key")
}

func Test_AuthMiddleware_WithMissingScope_ReturnsForbiddenNamingScope(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Read Only Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/public/v1/probe",
		Body:           map[string]string{},
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusForbidden,
	})

	assert.Contains(t, string(resp.Body), string(api_keys.ScopeWriteBookmarks))
}

func Test_AuthMiddleware_WhenHourLimitReached_ReturnsTooManyRequests(t *testing.T) {
	router := createProbeRouter()

	hourLimit := 2
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:             "Tiny Limit Key",
		Scopes:           []api_keys.Scope{api_keys.ScopeReadBookmarks},
		RateLimitPerHour: &hourLimit,
	})

	for i := 0; i < hourLimit; i++ {
		test_utils.MakeRequest(t, router, test_utils.RequestOptions{
			Method:         "GET",
			URL:            "/api/public/v1/probe",
			AuthToken:      bearerCredential(apiKey),
			ExpectedStatus: http.StatusOK,
		})
	}

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusTooManyRequests,
	})

	assert.Contains(t, string(resp.Body), "rate limit exceeded")
	assert.Contains(t, string(resp.Body), "retryAfterSec")
}

func Test_AuthMiddleware_AllowedResponse_CarriesRemainingHeaders(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Headers Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	w := test_utils.MakeAPIRequest(
		router, "GET", "/api/public/v1/probe", bearerCredential(apiKey), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRemainingHour))
	assert.NotEmpty(t, w.Header().Get(HeaderRemainingDay))
}

func Test_AuthMiddleware_WithUnlimitedKey_OmitsRemainingHeaders(t *testing.T) {
	router := createProbeRouter()

	unlimited := 0
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:             "Unlimited Key",
		Scopes:           []api_keys.Scope{api_keys.ScopeReadBookmarks},
		RateLimitPerHour: &unlimited,
		RateLimitPerDay:  &unlimited,
	})

	w := test_utils.MakeAPIRequest(
		router, "GET", "/api/public/v1/probe", bearerCredential(apiKey), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(HeaderRemainingHour))
	assert.Empty(t, w.Header().Get(HeaderRemainingDay))
}

func Test_AuthMiddleware_WithIPWhitelistMismatch_ReturnsForbidden(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:        "IP Restricted Key",
		Scopes:      []api_keys.Scope{api_keys.ScopeReadBookmarks},
		IPWhitelist: []string{"10.0.0.0/8"},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusForbidden,
	})

	assert.Contains(t, string(resp.Body), "IP address not allowed")
}

func Test_AuthMiddleware_WithMatchingIPWhitelist_RequestAllowed(t *testing.T) {
	router := createProbeRouter()

	// httptest requests arrive from 192.0.2.1
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:        "IP Allowed Key",
		Scopes:      []api_keys.Scope{api_keys.ScopeReadBookmarks},
		IPWhitelist: []string{"192.0.2.0/24"},
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusOK,
	})
}

func Test_AuthMiddleware_WithOriginMismatch_ReturnsForbidden(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:           "Origin Restricted Key",
		Scopes:         []api_keys.Scope{api_keys.ScopeReadBookmarks},
		AllowedOrigins: []string{"example.com"},
	})

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:    "GET",
		URL:       "/api/public/v1/probe",
		AuthToken: bearerCredential(apiKey),
		Headers: map[string]string{
			"Origin": "https://evil.com",
		},
		ExpectedStatus: http.StatusForbidden,
	})

	assert.Contains(t, string(resp.Body), "origin not allowed")
}

func Test_AuthMiddleware_WithWildcardOrigin_SubdomainAllowed(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:           "Wildcard Origin Key",
		Scopes:         []api_keys.Scope{api_keys.ScopeReadBookmarks},
		AllowedOrigins: []string{"*.example.com"},
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:    "GET",
		URL:       "/api/public/v1/probe",
		AuthToken: bearerCredential(apiKey),
		Headers: map[string]string{
			"Origin": "https://app.example.com",
		},
		ExpectedStatus: http.StatusOK,
	})
}

func getUsageStatuses(t *testing.T, apiKeyID uuid.UUID) []int {
	t.Helper()

	usageRepository := &usage.UsageRepository{}
	records, _, err := usageRepository.GetByApiKey(apiKeyID, 100, 0)
	require.NoError(t, err)

	statuses := make([]int, len(records))
	for i, record := range records {
		statuses[i] = record.HttpStatus
	}

	return statuses
}

func Test_AuthMiddleware_RevokedKeyRejection_AppendsUsageRecord(t *testing.T) {
	router := createProbeRouter()
	apiKey, owner := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:   "Revoked Accounting Key",
		Scopes: []api_keys.Scope{api_keys.ScopeReadBookmarks},
	})

	require.NoError(t, api_keys.GetApiKeyService().RevokeApiKey(apiKey.ID, owner))

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusUnauthorized,
	})

	// The 401 still accounts against the presented key
	statuses := getUsageStatuses(t, apiKey.ID)
	require.Len(t, statuses, 1)
	assert.Equal(t, http.StatusUnauthorized, statuses[0])
}

func Test_AuthMiddleware_ThrottledRejection_AppendsUsageRecord(t *testing.T) {
	router := createProbeRouter()

	hourLimit := 1
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:             "Throttled Accounting Key",
		Scopes:           []api_keys.Scope{api_keys.ScopeReadBookmarks},
		RateLimitPerHour: &hourLimit,
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusOK,
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "GET",
		URL:            "/api/public/v1/probe",
		AuthToken:      bearerCredential(apiKey),
		ExpectedStatus: http.StatusTooManyRequests,
	})

	statuses := getUsageStatuses(t, apiKey.ID)
	require.Len(t, statuses, 2)
	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func Test_AuthMiddleware_ForbiddenRejection_AppendsRecordAndQuotaHeaders(t *testing.T) {
	router := createProbeRouter()
	apiKey, _ := CreateTestApiKeyWithSecret(&api_keys.CreateApiKeyRequestDTO{
		Name:        "Forbidden Accounting Key",
		Scopes:      []api_keys.Scope{api_keys.ScopeReadBookmarks},
		IPWhitelist: []string{"10.0.0.0/8"},
	})

	w := test_utils.MakeAPIRequest(
		router, "GET", "/api/public/v1/probe", bearerCredential(apiKey), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRemainingHour))
	assert.NotEmpty(t, w.Header().Get(HeaderRemainingDay))

	statuses := getUsageStatuses(t, apiKey.ID)
	require.Len(t, statuses, 1)
	assert.Equal(t, http.StatusForbidden, statuses[0])
}

func Test_ExtractCredentials_RejectsMalformedValues(t *testing.T) {
	router := createProbeRouter()

	malformed := []string{
		"Bearer ht_abcdef",
		"Bearer .secretonly",
		"Bearer ht_abcdef.",
	}

	for _, credential := range malformed {
		resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
			Method:         "GET",
			URL:            "/api/public/v1/probe",
			AuthToken:      credential,
			ExpectedStatus: http.StatusUnauthorized,
		})

		assert.Contains(t, string(resp.Body), "invalid or missing API key")
	}
}
