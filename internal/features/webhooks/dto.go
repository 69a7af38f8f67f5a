package webhooks

type SubscribeRequestDTO struct {
	TargetURL string `json:"targetUrl" binding:"required,url"`
	Event     string `json:"event" binding:"required"`
}

type GetSubscriptionsResponseDTO struct {
	Subscriptions []*WebhookSubscription `json:"subscriptions"`
}
