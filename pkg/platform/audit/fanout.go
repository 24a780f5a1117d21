package audit

import (
	"context"
	"errors"

	id "travelgate/pkg/domain"
)

// Fanout appends each event to every store. All stores are attempted; the
// joined error reports which failed.
type Fanout []Store

func (f Fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reader is implemented by stores that can read events back.
type Reader interface {
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// ListBySession reads from the first store that supports reading.
func (f Fanout) ListBySession(ctx context.Context, sessionID id.SessionID) ([]Event, error) {
	r, err := f.reader()
	if err != nil {
		return nil, err
	}
	return r.ListBySession(ctx, sessionID)
}

// ListRecent reads from the first store that supports reading.
func (f Fanout) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	r, err := f.reader()
	if err != nil {
		return nil, err
	}
	return r.ListRecent(ctx, limit)
}

func (f Fanout) reader() (Reader, error) {
	for _, s := range f {
		if r, ok := s.(Reader); ok {
			return r, nil
		}
	}
	return nil, errors.New("no readable audit store configured")
}
