package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/adapters/messaging"
	"github.com/mediease/insurance-portal-service/internal/adapters/outbox"
	"github.com/mediease/insurance-portal-service/internal/config"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
	"github.com/mediease/insurance-portal-service/internal/observability"
)

func main() {
	cfg, err := config.LoadRelayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load relay configuration")
	}

	observability.InitLogger("insurance-portal-relay", cfg.Env)
	log.Info().Msg("starting outbox relay")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	// A dead broker at boot is degraded, not fatal: events stay queued in
	// the outbox and the periodic sweep retries once the broker returns.
	var publisher ports.ClaimEventPublisher
	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.ClaimQueueName)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to RabbitMQ")
	} else {
		defer broker.Close()
		publisher = broker
		log.Info().Str("queue", cfg.ClaimQueueName).Msg("connected to RabbitMQ")
	}

	relay := outbox.NewRelay(db, cfg.DatabaseURL, publisher)

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		status := "UP"
		httpStatus := http.StatusOK
		if !relay.IsHealthy() {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    status,
			"component": "outbox-relay",
		})
	})

	healthServer := &http.Server{
		Addr:    ":" + cfg.HealthPort,
		Handler: healthMux,
	}
	go func() {
		log.Info().Str("port", cfg.HealthPort).Msg("starting relay health server")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("relay health server error")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down relay")
		cancel()
	case err := <-errChan:
		log.Error().Err(err).Msg("relay worker failed")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down relay health server")
	}
	log.Info().Msg("relay shutdown complete")
}
