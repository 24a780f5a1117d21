package ports

import (
	"context"

	"travelgate/pkg/platform/audit"
)

// AuditPort defines the interface for emitting audit events.
// Defined here to keep the declaration module independent of the publisher.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
