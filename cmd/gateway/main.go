package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/filmoteca/filmoteca/internal/config"
	"github.com/filmoteca/filmoteca/internal/gateway"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	client := gateway.NewClient(cfg.APIURL, cfg.APIKeyToken, cfg.UpstreamTimeout)

	var provider *gateway.ProviderStrategy
	if cfg.TwitterConsumerKey != "" && cfg.TwitterConsumerSecret != "" {
		provider = gateway.NewProviderStrategy(client, gateway.ProviderConfig{
			ConsumerKey:    cfg.TwitterConsumerKey,
			ConsumerSecret: cfg.TwitterConsumerSecret,
			CallbackURL:    cfg.CallbackURL,
		})
	} else {
		slog.Info("provider sign-in disabled; no consumer credentials configured")
	}

	sessions := scs.New()
	sessions.Lifetime = 24 * time.Hour

	router := gateway.NewRouter(gateway.RouterDeps{
		Basic:    gateway.NewBasicStrategy(client),
		Provider: provider,
		Upstream: client,
		Sessions: sessions,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting auth gateway", "port", cfg.Port, "apiUrl", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down gateway", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("gateway error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("gateway forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("gateway stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
