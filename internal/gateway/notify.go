package gateway

import (
	"context"
	"net/http"

	"travelgate/internal/notify"
)

// Send relays a notification through the API's WhatsApp/SMS endpoint.
func (c *Client) Send(ctx context.Context, msg notify.Message) error {
	return c.call(ctx, "send_notification", http.MethodPost, "/notifications", nil, msg, nil)
}

// Name identifies the channel in logs and metrics.
func (c *Client) Name() string {
	return "api"
}
