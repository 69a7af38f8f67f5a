package users_dto

import (
	users_enums "hittags/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID            `json:"userId"`
	Email  string               `json:"email"`
	Role   users_enums.UserRole `json:"role"`
	Token  string               `json:"token"`
}
