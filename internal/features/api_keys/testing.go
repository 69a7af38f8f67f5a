package api_keys

import (
	"encoding/json"
	"fmt"
	"net/http"

	users_middleware "hittags/internal/features/users/middleware"
	users_services "hittags/internal/features/users/services"
	test_utils "hittags/internal/util/testing"

	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func CreateApiKeyTestRouter(additionalControllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	GetApiKeyController().RegisterRoutes(protected)
	for _, controller := range additionalControllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

func CreateTestApiKey(name string, scopes []Scope, ownerToken string, router *gin.Engine) *ApiKey {
	request := CreateApiKeyRequestDTO{
		Name:   name,
		Scopes: scopes,
	}

	w := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/api-keys",
		"Bearer "+ownerToken,
		request,
	)

	if w.Code != http.StatusOK {
		fmt.Printf("Failed to create API key. Status: %d, Body: %s\n", w.Code, w.Body.String())
		panic("Failed to create API key via API")
	}

	var response ApiKey
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}
