package webhooks

import "hittags/internal/features/bookmarks"

var webhookRepository = &WebhookRepository{}

var webhookService = &WebhookService{
	webhookRepository,
	bookmarks.GetBookmarkService(),
}

var webhookController = &WebhookController{
	webhookService,
}

func GetWebhookController() *WebhookController {
	return webhookController
}
