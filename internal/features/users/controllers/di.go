package users_controllers

import (
	users_services "hittags/internal/features/users/services"
)

var userController = &UserController{
	users_services.GetUserService(),
}

func GetUserController() *UserController {
	return userController
}
