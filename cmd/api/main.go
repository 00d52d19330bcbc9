package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotepay_backend/internal/email"
	"quotepay_backend/internal/events"
	apphttp "quotepay_backend/internal/http"
	"quotepay_backend/internal/http/router"
	"quotepay_backend/internal/mollie"
	"quotepay_backend/internal/notification"
	"quotepay_backend/internal/payments"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/platform/config"
	"quotepay_backend/platform/logger"
	"quotepay_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if !cfg.EmailEnabled {
		log.Warn("email disabled; operator alerts and confirmations will not be sent")
	}

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// Clients for the external systems of record
	backendClient := plunet.NewClient(plunet.Config{
		BaseURL: cfg.PlunetBaseURL,
		APIKey:  cfg.PlunetAPIKey,
		Timeout: cfg.PlunetTimeout,
	})
	checkoutClient := mollie.NewClient(mollie.Config{
		BaseURL: cfg.MollieBaseURL,
		APIKey:  cfg.MollieAPIKey,
		Timeout: cfg.MollieTimeout,
	})

	// Shared validator instance for dependency injection
	val := validator.New()

	paymentsModule := payments.NewModule(backendClient, checkoutClient, eventBus, cfg, log, val)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			paymentsModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
