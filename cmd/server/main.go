package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/makt28/rowalert/internal/config"
	"github.com/makt28/rowalert/internal/notify"
	"github.com/makt28/rowalert/internal/web"
)

func main() {
	// --- 1. Load Config ---
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), os.Getenv)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// --- 2. Setup Logger ---
	setupLogger(cfg.System.LogLevel)
	slog.Info("starting rowalert",
		"bind", cfg.System.BindAddress,
		"auth_enabled", cfg.Auth.Enabled(),
		"default_recipient", cfg.Alerts.DefaultRecipient != "",
	)

	// --- 3. Init Provider Client ---
	sender := notify.NewTwilioWhatsApp(cfg.Twilio)
	if err := sender.Validate(); err != nil {
		slog.Error("invalid provider configuration", "error", err)
		os.Exit(1)
	}
	dispatcher := notify.NewDispatcher(sender)

	// --- 4. HTTP Server ---
	srv := &http.Server{
		Addr:              cfg.System.BindAddress,
		Handler:           web.NewRouter(cfg, dispatcher),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("rowalert is running", "address", cfg.System.BindAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- 5. Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("received shutdown signal", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}

	slog.Info("rowalert stopped gracefully")
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

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}
