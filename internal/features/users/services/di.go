package users_services

import (
	users_repositories "hittags/internal/features/users/repositories"
)

var userService = &UserService{
	userRepository:      &users_repositories.UserRepository{},
	secretKeyRepository: &users_repositories.SecretKeyRepository{},
}

func GetUserService() *UserService {
	return userService
}
