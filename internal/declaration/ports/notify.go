package ports

import (
	"context"

	"travelgate/internal/notify"
)

// Notifier relays a message without blocking the caller. Delivery failures
// are the notifier's concern and never reach the wizard.
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message)
}
