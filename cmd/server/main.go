package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelgate/internal/admin"
	decHandler "travelgate/internal/declaration/handler"
	decMetrics "travelgate/internal/declaration/metrics"
	decService "travelgate/internal/declaration/service"
	decStore "travelgate/internal/declaration/store"
	"travelgate/internal/declaration/wizard"
	"travelgate/internal/gateway"
	"travelgate/internal/notify"
	"travelgate/internal/platform/config"
	"travelgate/internal/platform/httpserver"
	"travelgate/internal/platform/kafka"
	"travelgate/internal/platform/logger"
	"travelgate/internal/platform/metrics"
	"travelgate/internal/platform/postgres"
	"travelgate/internal/platform/redis"
	"travelgate/internal/ratelimit"
	rlMetrics "travelgate/internal/ratelimit/metrics"
	rlMiddleware "travelgate/internal/ratelimit/middleware"
	rlModels "travelgate/internal/ratelimit/models"
	"travelgate/internal/ratelimit/store/bucket"
	"travelgate/internal/referencedata"
	regHandler "travelgate/internal/registration/handler"
	regService "travelgate/internal/registration/service"
	regStore "travelgate/internal/registration/store"
	"travelgate/internal/session"
	httptransport "travelgate/internal/transport/http"
	"travelgate/pkg/platform/audit"
	auditmetrics "travelgate/pkg/platform/audit/metrics"
	auditpublisher "travelgate/pkg/platform/audit/publisher"
	kafkaaudit "travelgate/pkg/platform/audit/store/kafka"
	memoryaudit "travelgate/pkg/platform/audit/store/memory"
	pgaudit "travelgate/pkg/platform/audit/store/postgres"
)

const (
	sessionIssuer   = "travelgate"
	sessionAudience = "travelgate-web"
	auditBuffer     = 1024
)

type infra struct {
	redis    *redis.Client
	db       *sql.DB
	producer *kafka.Producer
}

// main wires dependencies and runs the server until SIGINT/SIGTERM. Business
// logic lives in the internal domain packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect dependencies", "error", err)
		os.Exit(1)
	}

	auditSinks := auditStore(ctx, deps, log)
	publisher := auditpublisher.NewPublisher(auditSinks,
		auditpublisher.WithAsyncBuffer(auditBuffer),
		auditpublisher.WithLogger(log),
		auditpublisher.WithMetrics(auditmetrics.New()),
	)

	api, err := gateway.New(cfg.RemoteAPI.BaseURL, cfg.RemoteAPI.APIKey, cfg.RemoteAPI.CallerID, cfg.RemoteAPI.Timeout,
		gateway.WithLogger(log),
		gateway.WithMetrics(gateway.NewMetrics()),
	)
	if err != nil {
		log.Error("failed to create remote API client", "error", err)
		os.Exit(1)
	}

	channels := []notify.Channel{api}
	if cfg.Telegram.BotToken != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Warn("telegram channel disabled", "error", err)
		} else {
			channels = append(channels, tg)
		}
	}
	relay := notify.NewRelay(channels, notify.WithLogger(log), notify.WithMetrics(notify.NewMetrics()))

	refData := referencedata.New(api,
		referencedata.WithTTL(cfg.ReferenceData.TTL),
		referencedata.WithLogger(log),
	)
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := refData.Warm(warmCtx); err != nil {
			log.Warn("reference data warm-up failed", "error", err)
		}
	}()

	var buckets ratelimit.BucketStore = bucket.NewInMemoryBucketStore()
	var declarations decService.Store = decStore.NewInMemoryStore()
	var registrations regService.Store = regStore.NewInMemoryStore()
	if deps.redis != nil {
		buckets = bucket.NewRedis(deps.redis.Client)
		declarations = decStore.NewRedis(deps.redis.Client)
		registrations = regStore.NewRedis(deps.redis.Client)
	}
	limiterMetrics := rlMetrics.New()
	hsLimiter := ratelimit.NewLimiter(buckets, "hs",
		rlModels.Policy{Limit: cfg.HSLookup.Limit, Window: cfg.HSLookup.Window}, limiterMetrics)
	startLimiter := rlMiddleware.New(
		ratelimit.NewLimiter(buckets, "start",
			rlModels.Policy{Limit: cfg.StartLimit.Limit, Window: cfg.StartLimit.Window}, limiterMetrics),
		log,
		rlMiddleware.WithDisabled(cfg.StartLimit.Disabled),
	)

	wizardMetrics := decMetrics.New()
	machine := wizard.New(api, api, api, relay,
		wizard.WithLogger(log),
		wizard.WithMetrics(wizardMetrics),
		wizard.WithCallbackURL(cfg.CheckoutCallback),
		wizard.WithOTPCooldown(cfg.OTPCooldown),
	)
	declarationSvc := decService.New(declarations, machine,
		decService.WithLogger(log),
		decService.WithMetrics(wizardMetrics),
		decService.WithAuditor(publisher),
		decService.WithHSLimiter(hsLimiter),
		decService.WithSessionTTL(cfg.SessionTTL),
	)
	registrationSvc := regService.New(registrations, api, api,
		regService.WithLogger(log),
		regService.WithAuditor(publisher),
		regService.WithNotifier(relay),
		regService.WithSessionTTL(cfg.SessionTTL),
		regService.WithOTPCooldown(cfg.OTPCooldown),
	)

	tokens := session.NewTokenService(cfg.SessionSignKey, sessionIssuer, sessionAudience)
	validator := session.NewMiddlewareAdapter(tokens)

	routes := []httptransport.Routes{
		referencedata.NewHandler(refData, log),
		decHandler.New(declarationSvc, tokens, validator, declarationSvc.SessionTTL(), log,
			decHandler.WithStartLimit(startLimiter.RateLimitIP)),
		regHandler.New(registrationSvc, tokens, validator, registrationSvc.SessionTTL(), log,
			regHandler.WithStartLimit(startLimiter.RateLimitIP)),
	}
	if cfg.AdminToken != "" {
		routes = append(routes, admin.New(auditSinks, cfg.AdminToken, log))
	}
	router := httptransport.NewRouter(httptransport.Config{
		Logger:           log,
		Metrics:          metrics.New(),
		HealthChecks:     healthChecks(deps),
		TrustedProxyHops: cfg.TrustedProxyHops,
	}, routes...)

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("starting travelgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if err := relay.Close(shutdownCtx); err != nil {
		log.Warn("notifications still in flight at shutdown", "error", err)
	}
	publisher.Close()
	deps.close(shutdownCtx, log)
}

// connect opens the optional backing services. Each one is skipped when not
// configured.
func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	deps := &infra{}
	var err error
	if deps.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		return nil, err
	}
	if deps.db, err = postgres.Open(ctx, cfg.Postgres); err != nil {
		deps.close(ctx, log)
		return nil, err
	}
	if deps.producer, err = kafka.NewProducer(ctx, cfg.Kafka); err != nil {
		deps.close(ctx, log)
		return nil, err
	}
	if deps.redis == nil {
		log.Info("redis not configured, sessions and throttles are process-local")
	}
	return deps, nil
}

func (d *infra) close(ctx context.Context, log *slog.Logger) {
	if d.producer != nil {
		if err := d.producer.Close(ctx); err != nil {
			log.Warn("kafka flush failed", "error", err)
		}
	}
	if d.db != nil {
		_ = d.db.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}

// auditStore fans events out to whichever durable sinks are configured plus
// memory. A sink that fails to initialise is left out. Postgres, when present,
// comes first so reads are served from it.
func auditStore(ctx context.Context, deps *infra, log *slog.Logger) audit.Fanout {
	var stores audit.Fanout
	if deps.db != nil {
		pg := pgaudit.New(deps.db)
		if err := pg.Migrate(ctx); err != nil {
			log.Warn("postgres audit sink disabled", "error", err)
		} else {
			stores = append(stores, pg)
		}
	}
	if deps.producer != nil {
		if err := deps.producer.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("kafka audit topic not ensured", "error", err)
		}
		stores = append(stores, kafkaaudit.New(deps.producer))
	}
	return append(stores, memoryaudit.NewInMemoryStore())
}

func healthChecks(deps *infra) map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if deps.redis != nil {
		checks["redis"] = deps.redis.Health
	}
	if deps.db != nil {
		checks["postgres"] = deps.db.PingContext
	}
	return checks
}
