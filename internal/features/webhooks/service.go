package webhooks

import (
	"errors"
	"fmt"

	"hittags/internal/features/bookmarks"

	"github.com/google/uuid"
)

type WebhookService struct {
	webhookRepository *WebhookRepository
	bookmarkService   *bookmarks.BookmarkService
}

func (s *WebhookService) Subscribe(
	userID uuid.UUID,
	request *SubscribeRequestDTO,
) (*WebhookSubscription, error) {
	event := WebhookEvent(request.Event)
	if !event.IsValid() {
		return nil, fmt.Errorf("unknown event: %s", request.Event)
	}

	subscription := &WebhookSubscription{
		ID:        uuid.New(),
		UserID:    userID,
		TargetURL: request.TargetURL,
		Event:     event,
	}

	if err := s.webhookRepository.CreateSubscription(subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return subscription, nil
}

func (s *WebhookService) Unsubscribe(subscriptionID, userID uuid.UUID) error {
	subscription, err := s.webhookRepository.GetSubscriptionByID(subscriptionID)
	if err != nil {
		return errors.New("subscription not found")
	}

	if subscription.UserID != userID {
		return errors.New("subscription not found")
	}

	if err := s.webhookRepository.DeleteSubscription(subscriptionID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}

func (s *WebhookService) ListSubscriptions(userID uuid.UUID) (*GetSubscriptionsResponseDTO, error) {
	subscriptions, err := s.webhookRepository.GetSubscriptionsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &GetSubscriptionsResponseDTO{Subscriptions: subscriptions}, nil
}

// PollRecentBookmarks backs the polling integration surface. Consumers
// without push delivery fetch the newest bookmarks on an interval.
func (s *WebhookService) PollRecentBookmarks(userID uuid.UUID, limit int) ([]*bookmarks.Bookmark, error) {
	return s.bookmarkService.ListRecentBookmarks(userID, limit)
}
