package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sporton/internal/app"
	"sporton/internal/config"
	"sporton/internal/services"
	"sporton/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg.LogLevel)

	// --- RabbitMQ (optional) ---
	mqClient, publisher := newPublisher(cfg.RabbitMQURL)
	if mqClient != nil {
		defer mqClient.Close()
		if err := mqClient.ConsumeOrderEvents(rabbitmq.HandleOrderMessage); err != nil {
			log.Error().Err(err).Msg("failed to start RabbitMQ consumer")
		}
	}

	// --- Application ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := app.New(ctx, cfg, publisher)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.AppPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := a.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")
	if err := a.Close(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// setupLogger sets the global zerolog level. Unknown levels fall back to info.
func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// newPublisher connects to RabbitMQ when url is set. Without a broker the
// service still runs; order events are simply not published.
func newPublisher(url string) (*rabbitmq.Client, services.EventPublisher) {
	if url == "" {
		log.Info().Msg("RABBITMQ_URL not set, order events disabled")
		return nil, nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, order events disabled")
		return nil, nil
	}
	return client, client
}
