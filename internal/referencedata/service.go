// Package referencedata serves the read-only lists the wizard offers as
// choices: countries, currencies and entry points. Each list is fetched once
// per TTL and shared by every session.
package referencedata

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"travelgate/internal/gateway"
	"travelgate/internal/referencedata/models"
)

const defaultTTL = 12 * time.Hour

const (
	keyCountries   = "countries"
	keyCurrencies  = "currencies"
	keyEntryPoints = "entry_points"
)

// Source fetches the lists from the remote API.
type Source interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
	ListEntryPoints(ctx context.Context) ([]models.EntryPoint, error)
}

type cachedList struct {
	value    any
	storedAt time.Time
}

type Service struct {
	source Source
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]cachedList
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		ttl:    defaultTTL,
		logger: slog.Default(),
		now:    time.Now,
		cache:  make(map[string]cachedList),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Countries(ctx context.Context) ([]models.Country, error) {
	return load(ctx, s, keyCountries, s.source.ListCountries)
}

func (s *Service) Currencies(ctx context.Context) ([]models.Currency, error) {
	return load(ctx, s, keyCurrencies, s.source.ListCurrencies)
}

// EntryPoints lists entry points, narrowed to one conveyance mode when mode
// is set.
func (s *Service) EntryPoints(ctx context.Context, mode string) ([]models.EntryPoint, error) {
	all, err := load(ctx, s, keyEntryPoints, s.source.ListEntryPoints)
	if err != nil {
		return nil, err
	}
	mode = strings.TrimSpace(mode)
	if mode == "" {
		return all, nil
	}
	out := make([]models.EntryPoint, 0, len(all))
	for _, ep := range all {
		if strings.EqualFold(ep.Mode, mode) {
			out = append(out, ep)
		}
	}
	return out, nil
}

// Warm loads every list concurrently. Startup logs a failure and carries on;
// lists are fetched again on first use.
func (s *Service) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Countries(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Currencies(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.EntryPoints(ctx, "")
		return err
	})
	return g.Wait()
}

func load[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if cached, ok := lookup[T](s, key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if cached, ok := lookup[T](s, key); ok {
			return cached, nil
		}
		list, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []T{}
		}
		s.mu.Lock()
		s.cache[key] = cachedList{value: list, storedAt: s.now()}
		s.mu.Unlock()
		return list, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "reference data fetch failed",
			"list", key,
			"error", err,
		)
		return nil, gateway.ToDomainError(err, "reference data is unavailable, please try again")
	}
	return slices.Clone(v.([]T)), nil
}

func lookup[T any](s *Service, key string) ([]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cached, ok := s.cache[key]
	if !ok || s.now().Sub(cached.storedAt) >= s.ttl {
		return nil, false
	}
	return slices.Clone(cached.value.([]T)), true
}
