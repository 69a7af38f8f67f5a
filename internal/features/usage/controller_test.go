package usage

import (
	"net/http"
	"testing"
	"time"

	api_keys "hittags/internal/features/api_keys"
	users_enums "hittags/internal/features/users/enums"
	users_testing "hittags/internal/features/users/testing"
	test_utils "hittags/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetKeyUsageStats_WithFreshKey_ReturnsZeroes(t *testing.T) {
	router := api_keys.CreateApiKeyTestRouter(GetUsageController())
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	apiKey := api_keys.CreateTestApiKey(
		"Stats Key", []api_keys.Scope{api_keys.ScopeReadBookmarks}, owner.Token, router)

	var stats KeyUsageStatsDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/api-keys/"+apiKey.ID.String()+"/usage/stats",
		"Bearer "+owner.Token,
		http.StatusOK,
		&stats,
	)

	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Equal(t, int64(0), stats.ErrorsLastDay)
}

func Test_GetKeyUsageStats_AfterRecordedRequests_CountsReflectThem(t *testing.T) {
	router := api_keys.CreateApiKeyTestRouter(GetUsageController())
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	apiKey := api_keys.CreateTestApiKey(
		"Counting Key", []api_keys.Scope{api_keys.ScopeReadBookmarks}, owner.Token, router)

	started := time.Now().Add(-10 * time.Millisecond)
	GetUsageService().RecordUsage(apiKey.ID, "GET", "/api/public/v1/bookmarks", http.StatusOK, started)
	GetUsageService().RecordUsage(apiKey.ID, "POST", "/api/public/v1/bookmarks", http.StatusCreated, started)
	GetUsageService().RecordUsage(apiKey.ID, "GET", "/api/public/v1/bookmarks", http.StatusTooManyRequests, started)

	var stats KeyUsageStatsDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/api-keys/"+apiKey.ID.String()+"/usage/stats",
		"Bearer "+owner.Token,
		http.StatusOK,
		&stats,
	)

	assert.Equal(t, int64(3), stats.TotalRequests)
	assert.Equal(t, int64(3), stats.RequestsLastHour)
	assert.Equal(t, int64(1), stats.ErrorsLastDay)
	assert.GreaterOrEqual(t, stats.AvgLatencyMs, int64(0))
}

func Test_GetKeyUsageRecords_ReturnsPaginatedNewestFirst(t *testing.T) {
	router := api_keys.CreateApiKeyTestRouter(GetUsageController())
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	apiKey := api_keys.CreateTestApiKey(
		"Records Key", []api_keys.Scope{api_keys.ScopeReadBookmarks}, owner.Token, router)

	started := time.Now().Add(-5 * time.Millisecond)
	for i := 0; i < 3; i++ {
		GetUsageService().RecordUsage(apiKey.ID, "GET", "/api/public/v1/tags", http.StatusOK, started)
	}

	var response GetUsageRecordsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/api-keys/"+apiKey.ID.String()+"/usage/records?limit=2",
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, int64(3), response.Total)
	require.Len(t, response.UsageRecords, 2)
	assert.Equal(t, "/api/public/v1/tags", response.UsageRecords[0].Route)
}

func Test_GetKeyUsageStats_WithForeignKey_ReturnsNotFound(t *testing.T) {
	router := api_keys.CreateApiKeyTestRouter(GetUsageController())
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	attacker := users_testing.CreateTestUser(users_enums.UserRoleMember)
	apiKey := api_keys.CreateTestApiKey(
		"Foreign Stats Key", []api_keys.Scope{api_keys.ScopeReadBookmarks}, owner.Token, router)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/api-keys/"+apiKey.ID.String()+"/usage/stats",
		"Bearer "+attacker.Token,
		http.StatusNotFound,
	)

	assert.Contains(t, string(resp.Body), "API key not found")
}

func Test_GetKeyUsageStats_WithNonExistentKey_ReturnsNotFound(t *testing.T) {
	router := api_keys.CreateApiKeyTestRouter(GetUsageController())
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/api-keys/"+uuid.New().String()+"/usage/stats",
		"Bearer "+owner.Token,
		http.StatusNotFound,
	)
}
