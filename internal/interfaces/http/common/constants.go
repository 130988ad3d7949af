package common

const (
	// MaxRequestBody limits JSON request bodies for survey endpoints.
	MaxRequestBody = 1 << 20
	// MaxWebhookBody allows for large provider batches on the webhook
	// endpoint.
	MaxWebhookBody = 4 << 20
)
