package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking_portal_backend/internal/adapters"
	"booking_portal_backend/internal/availability"
	"booking_portal_backend/internal/booking"
	bookingrepo "booking_portal_backend/internal/booking/repository"
	bookingservice "booking_portal_backend/internal/booking/service"
	"booking_portal_backend/internal/catalog"
	apphttp "booking_portal_backend/internal/http"
	"booking_portal_backend/internal/http/router"
	"booking_portal_backend/internal/quotes"
	quotesrepo "booking_portal_backend/internal/quotes/repository"
	"booking_portal_backend/internal/scheduler"
	"booking_portal_backend/internal/search"
	"booking_portal_backend/platform/config"
	"booking_portal_backend/platform/db"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"
	"booking_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisOpt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to parse redis url", "error", err)
		panic("failed to parse redis url: " + err.Error())
	}
	rdb := redis.NewClient(redisOpt)
	defer rdb.Close()

	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	draftScheduler, closeScheduler := initDraftScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(pool)
	availabilityModule := availability.NewModule(cfg, val, log)
	searchModule := search.NewModule(pool, val)

	// Repositories shared between modules and their adapters
	quotesRepo := quotesrepo.New(pool)
	bookingRepo := bookingrepo.New(pool)

	// Anti-corruption layer: narrow ports implemented over other modules
	catalogReader := adapters.NewCatalogReaderAdapter(catalogModule.Service)
	quoteReader := adapters.NewQuoteReaderAdapter(quotesRepo)
	bookingSlots := adapters.NewBookingSlotResolver(availabilityModule.Service)
	quoteSlots := adapters.NewQuoteSlotResolver(availabilityModule.Service)
	bookingSubmitter := adapters.NewBookingSubmitterAdapter(bookingRepo)
	acceptanceSubmitter := adapters.NewQuoteAcceptanceSubmitter(quotesRepo)

	quotesModule := quotes.NewModule(quotesRepo, quoteSlots, acceptanceSubmitter, eventBus, val, log)
	bookingModule := booking.NewModule(
		bookingRepo,
		rdb,
		cfg.GetDraftSessionTTL(),
		catalogReader,
		quoteReader,
		bookingSlots,
		bookingSubmitter,
		bookingSubmitter,
		draftScheduler,
		eventBus,
		val,
		log,
	)

	// Wire the booking activity writer so submissions land in the audit trail
	_ = adapters.NewBookingActivityWriter(bookingRepo, eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			availabilityModule,
			searchModule,
			quotesModule,
			bookingModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initDraftScheduler builds the asynq client for draft expiry sweeps. The
// wizard works without it: sessions expire via their Redis TTL either way,
// the sweep only audits the outcome.
func initDraftScheduler(cfg config.SchedulerConfig, log *logger.Logger) (bookingservice.ExpiryScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; draft expiry sweeps disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize draft scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
