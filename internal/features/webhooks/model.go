package webhooks

import (
	"time"

	"github.com/google/uuid"
)

type WebhookEvent string

const (
	EventBookmarkCreated WebhookEvent = "bookmark.created"
	EventBookmarkDeleted WebhookEvent = "bookmark.deleted"
)

func (e WebhookEvent) IsValid() bool {
	switch e {
	case EventBookmarkCreated, EventBookmarkDeleted:
		return true
	}

	return false
}

type WebhookSubscription struct {
	ID        uuid.UUID    `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID    `json:"userId"    gorm:"column:user_id"`
	TargetURL string       `json:"targetUrl" gorm:"column:target_url"`
	Event     WebhookEvent `json:"event"     gorm:"column:event"`
	CreatedAt time.Time    `json:"createdAt" gorm:"column:created_at"`
}

func (WebhookSubscription) TableName() string {
	return "webhook_subscriptions"
}
