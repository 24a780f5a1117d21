package referencedata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgate/internal/gateway"
	"travelgate/internal/referencedata/models"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/testutil"
)

type fakeSource struct {
	countryCalls atomic.Int32
	release      chan struct{}
	failCurrency bool
}

func (f *fakeSource) ListCountries(context.Context) ([]models.Country, error) {
	f.countryCalls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return []models.Country{{Code: "KE", Name: "Kenya"}, {Code: "UG", Name: "Uganda"}}, nil
}

func (f *fakeSource) ListCurrencies(context.Context) ([]models.Currency, error) {
	if f.failCurrency {
		return nil, gateway.NewAPIError(gateway.ErrorUnavailable, "list_currencies", "down", errors.New("503"))
	}
	return []models.Currency{{Code: "KES", Name: "Kenya Shilling"}}, nil
}

func (f *fakeSource) ListEntryPoints(context.Context) ([]models.EntryPoint, error) {
	return []models.EntryPoint{
		{Code: "JKIA", Description: "Jomo Kenyatta International Airport", Mode: "Air"},
		{Code: "MSA", Description: "Port of Mombasa", Mode: "Sea"},
		{Code: "NMG", Description: "Namanga", Mode: "Land"},
	}, nil
}

func newTestService(src Source) *Service {
	return New(src, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), WithTTL(time.Hour))
}

func TestCountriesLoadOnceUnderConcurrency(t *testing.T) {
	src := &fakeSource{release: make(chan struct{})}
	svc := newTestService(src)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			countries, err := svc.Countries(context.Background())
			assert.NoError(t, err)
			assert.Len(t, countries, 2)
		}()
	}
	require.Eventually(t, func() bool { return src.countryCalls.Load() == 1 }, time.Second, time.Millisecond)
	close(src.release)
	wg.Wait()

	_, err := svc.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.countryCalls.Load())
}

func TestCacheExpires(t *testing.T) {
	src := &fakeSource{}
	svc := newTestService(src)
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Countries(context.Background())
	require.NoError(t, err)
	now = now.Add(59 * time.Minute)
	_, err = svc.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.countryCalls.Load())

	now = now.Add(time.Minute)
	_, err = svc.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.countryCalls.Load())
}

func TestCallersCannotMutateCache(t *testing.T) {
	svc := newTestService(&fakeSource{})
	first, err := svc.Countries(context.Background())
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := svc.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kenya", second[0].Name)
}

func TestEntryPointsModeFilter(t *testing.T) {
	svc := newTestService(&fakeSource{})

	all, err := svc.EntryPoints(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sea, err := svc.EntryPoints(context.Background(), "sea")
	require.NoError(t, err)
	require.Len(t, sea, 1)
	assert.Equal(t, "MSA", sea[0].Code)

	none, err := svc.EntryPoints(context.Background(), "Rail")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFetchFailureIsNotCached(t *testing.T) {
	src := &fakeSource{failCurrency: true}
	svc := newTestService(src)

	_, err := svc.Currencies(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))

	src.failCurrency = false
	currencies, err := svc.Currencies(context.Background())
	require.NoError(t, err)
	assert.Len(t, currencies, 1)
}

func TestWarm(t *testing.T) {
	t.Run("loads every list", func(t *testing.T) {
		src := &fakeSource{}
		svc := newTestService(src)
		require.NoError(t, svc.Warm(context.Background()))

		_, err := svc.Countries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(1), src.countryCalls.Load())
	})

	t.Run("reports a failing list", func(t *testing.T) {
		svc := newTestService(&fakeSource{failCurrency: true})
		assert.Error(t, svc.Warm(context.Background()))
	})
}

func TestHandler(t *testing.T) {
	src := &fakeSource{}
	r := chi.NewRouter()
	NewHandler(newTestService(src), slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/reference/entry-points?mode=Air"))
	testutil.AssertStatusOK(t, rr)
	eps := testutil.UnmarshalResponse[[]models.EntryPoint](t, rr)
	require.Len(t, *eps, 1)
	assert.Equal(t, "JKIA", (*eps)[0].Code)

	src.failCurrency = true
	rr = testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/reference/currencies"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadGateway, "service_unavailable")
}
