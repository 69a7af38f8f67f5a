package users_controllers

import (
	"net/http"

	users_dto "hittags/internal/features/users/dto"
	users_middleware "hittags/internal/features/users/middleware"
	users_services "hittags/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *users_services.UserService
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/users")

	userRoutes.POST("/signup", c.SignUp)
	userRoutes.POST("/signin", c.SignIn)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/users")

	userRoutes.GET("/me", c.GetCurrentUser)
}

// SignUp
// @Summary Register a new user
// @Description Create a new account with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "Registration data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users/signup [post]
func (c *UserController) SignUp(ctx *gin.Context) {
	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.userService.SignUp(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// SignIn
// @Summary Sign in
// @Description Exchange email and password for an access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "Credentials"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignIn(&request)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCurrentUser
// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.User
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}
