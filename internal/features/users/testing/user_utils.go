package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "hittags/internal/features/users/dto"
	users_enums "hittags/internal/features/users/enums"
	users_models "hittags/internal/features/users/models"
	users_repositories "hittags/internal/features/users/repositories"
	users_services "hittags/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	response.Email = user.Email

	return response
}
