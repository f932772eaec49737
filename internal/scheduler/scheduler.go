package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/valuebot/internal/config"
	"github.com/omarshaarawi/valuebot/internal/service"
)

type Scheduler struct {
	s                gocron.Scheduler
	cfg              config.Schedule
	valuationService *service.ValuationService
	// sendMessage is nil when no chat is configured; the report job is skipped.
	sendMessage func(string) error
}

func NewScheduler(cfg config.Schedule, valuationService *service.ValuationService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:                s,
		cfg:              cfg,
		valuationService: valuationService,
		sendMessage:      sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.ReloadCron, false),
		gocron.NewTask(s.reload),
		gocron.WithName("reload"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create reload job: %w", err)
	}

	if s.sendMessage != nil {
		_, err = s.s.NewJob(
			gocron.CronJob(s.cfg.ReportCron, false),
			gocron.NewTask(s.sendUndervalued),
			gocron.WithName("undervalued-report"),
		)
		if err != nil {
			return fmt.Errorf("failed to create undervalued report job: %w", err)
		}
	}

	s.s.Start()
	slog.Info("Scheduler started", "jobs", len(s.s.Jobs()))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) reload() {
	ds := s.valuationService.Reload(context.Background())
	slog.Info("Scheduled reload finished", "origin", ds.Origin, "rows", len(ds.Rows))
}

func (s *Scheduler) sendUndervalued() {
	if err := s.sendMessage(s.valuationService.UndervaluedReport()); err != nil {
		slog.Error("Failed to send undervalued report", "error", err)
	}
}
