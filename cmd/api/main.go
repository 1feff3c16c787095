// Command api runs the P.A.G.O. backend HTTP server.
package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pago_backend/internal/analytics"
	"pago_backend/internal/auth"
	"pago_backend/internal/chatbot"
	"pago_backend/internal/downloads"
	"pago_backend/internal/email"
	apphttp "pago_backend/internal/http"
	"pago_backend/internal/leads"
	"pago_backend/internal/notification"
	"pago_backend/internal/storage"
	"pago_backend/migrations"
	"pago_backend/platform/config"
	"pago_backend/platform/db"
	"pago_backend/platform/events"
	"pago_backend/platform/logger"
	"pago_backend/platform/ratelimit"
	"pago_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// withRetry keeps probing a startup dependency with a growing pause,
// containers often come up before their database does.
func withRetry[T any](ctx context.Context, log *logger.Logger, name string, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := fn()
		if err == nil {
			return value, nil
		}
		log.Warn("startup dependency not ready", "dependency", name, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return fn()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("production").Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := withRetry(ctx, log, "database", 5, func() (*pgxpool.Pool, error) {
		return db.NewPool(ctx, cfg.DatabaseURL)
	})
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL, migrations.FS); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// Rate limit state: Redis when configured, in-memory otherwise.
	var store ratelimit.Store
	if cfg.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, falling back to in-memory rate limiting", "error", err)
			store = ratelimit.NewMemoryStore(ctx)
		} else {
			defer redisStore.Close()
			store = redisStore
		}
	} else {
		store = ratelimit.NewMemoryStore(ctx)
	}
	limiter := ratelimit.NewLimiter(store, cfg.RateLimitWindow, log)

	var objectStore *storage.Client
	if cfg.IsMinIOEnabled() {
		objectStore, err = storage.NewClient(cfg, log)
		if err != nil {
			log.Error("minio unavailable", "error", err)
			os.Exit(1)
		}
		if err := objectStore.EnsureBucket(ctx, cfg.DownloadsBucket); err != nil {
			log.Error("bucket setup failed", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("minio not configured, downloads are metadata-only")
	}

	var sender email.Sender
	if cfg.EmailEnabled {
		smtpSender, err := email.NewSMTPSender(cfg, log)
		if err != nil {
			log.Error("smtp setup failed", "error", err)
			os.Exit(1)
		}
		sender = smtpSender
	} else {
		sender = email.NewNoopSender(log)
	}

	var queue *notification.Client
	if cfg.RedisURL != "" {
		queue, err = notification.NewClient(cfg)
		if err != nil {
			log.Warn("notification queue unavailable, delivering inline", "error", err)
			queue = nil
		} else {
			defer queue.Close()
		}
	}

	bus := events.NewBus()
	validate := validator.New()

	notification.NewModule(pool, sender, queue, cfg, bus, log)

	modules := []apphttp.Module{
		leads.NewModule(pool, bus, validate, log),
		auth.NewModule(pool, cfg, validate, log),
		downloads.NewModule(pool, objectStore, cfg, validate, log),
		analytics.NewModule(pool, validate, log),
		chatbot.NewModule(ctx, cfg, validate, log),
	}

	engine := apphttp.NewRouter(cfg, log, limiter, pool, modules)

	server := &nethttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped cleanly")
}
