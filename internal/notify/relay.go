// Package notify relays outbound notifications. Delivery is fire-and-forget:
// callers never wait for it and never see its outcome.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"travelgate/pkg/platform/circuit"
	"travelgate/pkg/requestcontext"
)

const defaultSendTimeout = 10 * time.Second

// Channel delivers a message over one medium.
type Channel interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

type Relay struct {
	channels []Channel
	breakers map[string]*circuit.Breaker
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *Metrics

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

func WithSendTimeout(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithBreakerOptions tunes the per-channel circuit breakers.
func WithBreakerOptions(opts ...circuit.Option) Option {
	return func(r *Relay) {
		for name := range r.breakers {
			r.breakers[name] = circuit.New("notify-"+name, opts...)
		}
	}
}

// NewRelay delivers every message to each channel in order.
func NewRelay(channels []Channel, opts ...Option) *Relay {
	r := &Relay{
		channels: channels,
		breakers: make(map[string]*circuit.Breaker, len(channels)),
		timeout:  defaultSendTimeout,
		logger:   slog.Default(),
	}
	for _, ch := range channels {
		r.breakers[ch.Name()] = circuit.New("notify-" + ch.Name())
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notify schedules delivery and returns immediately. The request context only
// contributes its values; delivery outlives the request.
func (r *Relay) Notify(ctx context.Context, msg Message) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.metrics.inc("relay", "dropped")
		r.logger.WarnContext(ctx, "notification dropped, relay closed",
			"kind", string(msg.Kind),
			"reference_number", msg.ReferenceNumber,
		)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	go func() {
		defer r.wg.Done()
		r.deliver(detached, msg)
	}()
}

func (r *Relay) deliver(ctx context.Context, msg Message) {
	for _, ch := range r.channels {
		breaker := r.breakers[ch.Name()]
		if !breaker.Allow() {
			r.metrics.inc(ch.Name(), "skipped")
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := ch.Send(sendCtx, msg)
		cancel()

		if err != nil {
			if _, change := breaker.RecordFailure(); change.Opened {
				r.logger.WarnContext(ctx, "notification channel circuit opened",
					"channel", ch.Name(),
				)
			}
			r.metrics.inc(ch.Name(), "failed")
			r.logger.WarnContext(ctx, "notification delivery failed",
				"request_id", requestcontext.RequestID(ctx),
				"channel", ch.Name(),
				"kind", string(msg.Kind),
				"reference_number", msg.ReferenceNumber,
				"error", err,
			)
			continue
		}
		breaker.RecordSuccess()
		r.metrics.inc(ch.Name(), "sent")
	}
}

// Close stops accepting messages and waits for in-flight deliveries or ctx.
func (r *Relay) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
