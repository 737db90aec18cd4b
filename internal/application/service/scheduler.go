package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"
	"wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Scheduler delivers a status report to one recipient at a fixed interval.
// Ticks do not wait for each other: a slow cycle never delays the next one.
type Scheduler struct {
	reports   service.ReportService
	notifier  service.Notifier
	recipient string
	interval  time.Duration
	logger    *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new status report scheduler
func NewScheduler(cfg *config.ScheduleConfig, reports service.ReportService, notifier service.Notifier, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		reports:   reports,
		notifier:  notifier,
		recipient: cfg.Recipient,
		interval:  cfg.Interval,
		logger:    logger.WithComponent("scheduler"),
	}
}

// Start begins ticking in the background
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid schedule interval %s", s.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop cancels running cycles and waits for them to return
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				if err := s.Deliver(ctx); err != nil {
					s.logger.Error("Error sending scheduled status report", zap.Error(err))
				}
			}()
		}
	}
}

// Deliver builds one status report and sends it. A missing recipient is
// logged and skipped. A panic inside the cycle ends only this cycle.
func (s *Scheduler) Deliver(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("status report cycle panicked: %v", r)
		}
	}()

	if s.recipient == "" {
		s.logger.Error("No recipient set to send scheduled reports", zap.Error(entity.ErrNoRecipient))
		return nil
	}

	message := s.reports.StatusReport(ctx)
	if err := s.notifier.Notify(ctx, s.recipient, message); err != nil {
		return fmt.Errorf("failed to deliver status report: %w", err)
	}

	s.logger.Info("Scheduled status report delivered", zap.String("recipient", s.recipient))
	return nil
}

// LogNotifier writes reports to the log when no transport is enabled
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent("log-notifier")}
}

// Notify implements Notifier
func (n *LogNotifier) Notify(ctx context.Context, recipient string, message string) error {
	n.logger.Info("Report ready", zap.String("recipient", recipient), zap.String("report", message))
	return nil
}
