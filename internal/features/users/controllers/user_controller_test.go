package users_controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"

	"hittags/internal/features/audit_logs"
	users_dto "hittags/internal/features/users/dto"
	users_enums "hittags/internal/features/users/enums"
	users_middleware "hittags/internal/features/users/middleware"
	users_models "hittags/internal/features/users/models"
	users_services "hittags/internal/features/users/services"
	users_testing "hittags/internal/features/users/testing"
	test_utils "hittags/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected)

	return router
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@test.com", prefix, uuid.New().String()[:8])
}

func Test_SignUp_WithValidRequest_UserRegistered(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.SignUpRequestDTO{
		Email:    uniqueEmail("signup"),
		Password: "secure-password-1",
	}

	resp := test_utils.MakePostRequest(
		t, router, "/api/v1/users/signup", "", request, http.StatusOK)

	assert.Contains(t, string(resp.Body), "User registered successfully")
}

func Test_SignUp_WithDuplicateEmail_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.SignUpRequestDTO{
		Email:    uniqueEmail("duplicate"),
		Password: "secure-password-1",
	}

	test_utils.MakePostRequest(
		t, router, "/api/v1/users/signup", "", request, http.StatusOK)

	test_utils.MakePostRequest(
		t, router, "/api/v1/users/signup", "", request, http.StatusBadRequest)
}

func Test_SignUp_WithShortPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.SignUpRequestDTO{
		Email:    uniqueEmail("shortpw"),
		Password: "short",
	}

	test_utils.MakePostRequest(
		t, router, "/api/v1/users/signup", "", request, http.StatusBadRequest)
}

func Test_SignIn_WithValidCredentials_ReturnsToken(t *testing.T) {
	router := createUserTestRouter()
	email := uniqueEmail("signin")

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "secure-password-1",
	}, http.StatusOK)

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", users_dto.SignInRequestDTO{
		Email:    email,
		Password: "secure-password-1",
	}, http.StatusOK)

	var response users_dto.SignInResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &response))

	assert.Equal(t, email, response.Email)
	assert.NotEmpty(t, response.Token)
	assert.NotEqual(t, uuid.Nil, response.UserID)
}

func Test_SignIn_WithWrongPassword_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()
	email := uniqueEmail("wrongpw")

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "secure-password-1",
	}, http.StatusOK)

	test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", users_dto.SignInRequestDTO{
		Email:    email,
		Password: "wrong-password-1",
	}, http.StatusUnauthorized)
}

func Test_SignIn_WithUnknownEmail_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", users_dto.SignInRequestDTO{
		Email:    uniqueEmail("nobody"),
		Password: "secure-password-1",
	}, http.StatusUnauthorized)
}

func Test_GetCurrentUser_WithValidToken_ReturnsUser(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleMember)

	var response users_models.User
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, user.UserID, response.ID)
	assert.Equal(t, user.Email, response.Email)
}

func Test_GetCurrentUser_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakeGetRequest(
		t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
}

func Test_GetCurrentUser_WithMalformedToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakeGetRequest(
		t, router, "/api/v1/users/me", "Bearer not-a-jwt", http.StatusUnauthorized)
}
