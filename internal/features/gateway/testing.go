package gateway

import (
	api_keys "hittags/internal/features/api_keys"
	users_enums "hittags/internal/features/users/enums"
	users_models "hittags/internal/features/users/models"
	users_repositories "hittags/internal/features/users/repositories"
	users_testing "hittags/internal/features/users/testing"

	"github.com/gin-gonic/gin"
)

// CreatePublicTestRouter builds the key-guarded surface the way main
// does, with every handler behind the auth middleware.
func CreatePublicTestRouter(registerRoutes func(router *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	public := router.Group("/api/public/v1")
	public.Use(GetAuthMiddleware())

	registerRoutes(public)

	return router
}

// CreateTestApiKeyWithSecret provisions a user and a key through the
// service so the plaintext secret is available to tests.
func CreateTestApiKeyWithSecret(
	request *api_keys.CreateApiKeyRequestDTO,
) (*api_keys.ApiKey, *users_models.User) {
	signIn := users_testing.CreateTestUser(users_enums.UserRoleMember)

	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByID(signIn.UserID)
	if err != nil {
		panic(err)
	}

	apiKey, err := api_keys.GetApiKeyService().CreateApiKey(user, request)
	if err != nil {
		panic(err)
	}

	return apiKey, user
}
