package worker

import (
	"context"
	"log/slog"

	audit "travelgate/pkg/platform/audit"
)

// AppendFunc persists one event. Publishers pass their guarded append so the
// worker shares breaker and metrics handling with the sync path.
type AppendFunc func(ctx context.Context, event audit.Event) error

// Worker consumes audit events from a channel until it is closed. Append
// failures are logged and the loop keeps going.
type Worker struct {
	appendFn AppendFunc
	inbox    <-chan audit.Event
	logger   *slog.Logger
}

func NewWorker(appendFn AppendFunc, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{appendFn: appendFn, inbox: inbox, logger: logger}
}

// Run drains the inbox until it is closed. Events still buffered when the
// inbox closes are persisted before Run returns.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.appendFn(ctx, event); err != nil {
			w.logger.WarnContext(ctx, "failed to persist audit event",
				"action", event.Action,
				"session_id", event.SessionID.String(),
				"error", err,
			)
		}
	}
}
