package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"

	"github.com/feastly/opsboard/internal/analytics"
	"github.com/feastly/opsboard/internal/auth"
	authsmtp "github.com/feastly/opsboard/internal/auth/smtp"
	"github.com/feastly/opsboard/internal/backend"
	boardapp "github.com/feastly/opsboard/internal/board/app"
	boardmetrics "github.com/feastly/opsboard/internal/board/metrics"
	"github.com/feastly/opsboard/internal/board/ports"
	"github.com/feastly/opsboard/internal/config"
	"github.com/feastly/opsboard/internal/events"
	"github.com/feastly/opsboard/internal/httpapi"
	"github.com/feastly/opsboard/internal/profile"
	sessionredis "github.com/feastly/opsboard/internal/session/redis"
	"github.com/feastly/opsboard/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stdout, telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sessions := sessionredis.NewStore(redisClient, cfg.Redis.SessionTTL)

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	meter := otel.Meter(cfg.Service.Name)

	boardMetrics, err := boardmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create board metrics", "error", err)
		os.Exit(1)
	}
	orderService := backend.NewObservableOrderService(backendClient, boardMetrics)

	var eventBus ports.EventBus
	if cfg.Events.AMQPURL != "" {
		bus, closeBus, err := events.Dial(cfg.Events.AMQPURL)
		if err != nil {
			logger.Error("failed to connect to event broker", "error", err)
			os.Exit(1)
		}
		defer closeBus()
		eventBus = bus
	} else {
		eventBus = events.NewNoopEventBus()
	}

	var notifier auth.Notifier
	if cfg.SMTP.Host != "" {
		notifier = authsmtp.NewNotifier(authsmtp.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		})
	} else {
		notifier = auth.NewNoopNotifier()
	}

	authService := auth.NewService(backendClient, sessions, notifier, logger)
	boards := boardapp.NewRegistry(sessions, orderService, eventBus, logger)
	profileService := profile.NewService(sessions)
	analyticsService := analytics.NewService(backendClient, sessions, logger)

	handler := httpapi.NewHandler(authService, boards, profileService, analyticsService)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := sessionredis.CheckHealth(r.Context(), redisClient); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	handler.Register(mux)

	httpMetrics, err := httpapi.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	root := httpapi.WithRecovery(
		httpapi.WithLogging(
			httpapi.WithMetrics(mux, httpMetrics),
			logger,
		),
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
