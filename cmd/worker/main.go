// Command worker consumes the notification queue.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pago_backend/internal/email"
	"pago_backend/internal/notification"
	"pago_backend/platform/config"
	"pago_backend/platform/db"
	"pago_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("production").Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	if cfg.RedisURL == "" {
		logger.New(cfg.Env).Error("REDIS_URL is required for the worker")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

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

	repo := notification.NewRepository(pool)
	service := notification.NewService(repo, sender, nil, cfg, log)

	worker, err := notification.NewWorker(cfg, service, log)
	if err != nil {
		log.Error("worker setup failed", "error", err)
		os.Exit(1)
	}

	log.Info("notification worker running", "queue", cfg.QueueName)
	worker.Run(ctx)
	log.Info("worker stopped cleanly")
}
