package collections

import (
	"time"

	"github.com/google/uuid"
)

type Collection struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	UserID      uuid.UUID `json:"userId"      gorm:"column:user_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	IsPublic    bool      `json:"isPublic"    gorm:"column:is_public"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}
