package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/valuebot/internal/analysis"
	"github.com/omarshaarawi/valuebot/internal/api/source"
	"github.com/omarshaarawi/valuebot/internal/bot"
	"github.com/omarshaarawi/valuebot/internal/config"
	"github.com/omarshaarawi/valuebot/internal/logger"
	"github.com/omarshaarawi/valuebot/internal/repository/memory"
	"github.com/omarshaarawi/valuebot/internal/scheduler"
	"github.com/omarshaarawi/valuebot/internal/server"
	"github.com/omarshaarawi/valuebot/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger.New(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := source.NewLoader(source.NewClient(), cfg.Data)
	repo := memory.NewRepository()
	valuationService := service.NewValuationService(loader, repo, analysis.DefaultFeatureConfig())

	ds := valuationService.Reload(ctx)
	slog.Info("Dataset loaded", "origin", ds.Origin, "source", ds.Source, "rows", len(ds.Rows), "warnings", len(ds.Warnings))

	var sendMessage func(string) error
	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot, valuationService)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, valuationService, sendMessage)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.New(valuationService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return serve(ctx, srv)
}

// serve runs srv until ctx is done, then shuts it down. A listen failure is
// returned immediately.
func serve(ctx context.Context, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("serving HTTP on %s: %w", srv.Addr, err)
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
