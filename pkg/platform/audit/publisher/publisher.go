// Package publisher emits audit events to a Store, synchronously or through
// a bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	id "travelgate/pkg/domain"
	audit "travelgate/pkg/platform/audit"
	auditmetrics "travelgate/pkg/platform/audit/metrics"
	"travelgate/pkg/platform/audit/worker"
	"travelgate/pkg/platform/circuit"
	"travelgate/pkg/platform/middleware/metadata"
	"travelgate/pkg/requestcontext"
)

var (
	ErrBufferFull = errors.New("audit buffer full")
	ErrClosed     = errors.New("audit publisher closed")
)

// Lister is implemented by stores that can read back a session's trail.
type Lister interface {
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error)
}

type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *auditmetrics.Metrics
	breaker *circuit.Breaker

	bufferSize int
	inbox      chan audit.Event
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit enqueue events instead of writing them inline.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.bufferSize = size
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *auditmetrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:   store,
		logger:  slog.Default(),
		breaker: circuit.New("audit-store"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		w := worker.NewWorker(p.persist, p.inbox, p.logger)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.Run(context.Background())
		}()
	}
	return p
}

// Emit enriches the event from the request context and persists it. In async
// mode it returns ErrBufferFull instead of blocking when the buffer is full.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event = enrich(ctx, event)

	if p.inbox == nil {
		return p.persist(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.metrics.IncBufferDropped()
		return ErrBufferFull
	}
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	if !p.breaker.Allow() {
		p.metrics.IncCircuitBreakerDropped()
		return nil
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncPersistFailures()
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.metrics.SetCircuitBreakerState(true)
			p.logger.WarnContext(ctx, "audit store circuit opened", "error", err)
		}
		return err
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.metrics.SetCircuitBreakerState(false)
		p.logger.InfoContext(ctx, "audit store circuit closed")
	}
	p.metrics.IncEmitted(string(event.Category))
	return nil
}

// List returns a session's events when the store supports reading.
func (p *Publisher) List(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	lister, ok := p.store.(Lister)
	if !ok {
		return nil, errors.New("audit store does not support listing")
	}
	return lister.ListBySession(ctx, sessionID)
}

// Close stops accepting events and waits for the buffer to drain.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func enrich(ctx context.Context, event audit.Event) audit.Event {
	if event.ID == (id.EventID{}) {
		event.ID = id.NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.SessionID.IsNil() {
		event.SessionID = requestcontext.SessionID(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		if ua := requestcontext.UserAgent(ctx); ua != "" {
			event.Device = metadata.DeviceDisplayName(ua)
		}
	}
	return event
}
