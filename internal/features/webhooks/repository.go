package webhooks

import (
	"time"

	"hittags/internal/storage"

	"github.com/google/uuid"
)

type WebhookRepository struct{}

func (r *WebhookRepository) CreateSubscription(subscription *WebhookSubscription) error {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}

	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(subscription).Error
}

func (r *WebhookRepository) GetSubscriptionByID(subscriptionID uuid.UUID) (*WebhookSubscription, error) {
	var subscription WebhookSubscription

	err := storage.GetDb().
		Where("id = ?", subscriptionID).
		First(&subscription).Error

	if err != nil {
		return nil, err
	}

	return &subscription, nil
}

func (r *WebhookRepository) GetSubscriptionsByUser(userID uuid.UUID) ([]*WebhookSubscription, error) {
	var subscriptions = make([]*WebhookSubscription, 0)

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subscriptions).Error

	return subscriptions, err
}

func (r *WebhookRepository) DeleteSubscription(subscriptionID uuid.UUID) error {
	return storage.GetDb().Delete(&WebhookSubscription{}, subscriptionID).Error
}
