package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	app_service "wallet-checkpoint-monitor/internal/application/service"
	domain_service "wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/explorer"
	"wallet-checkpoint-monitor/internal/infrastructure/httpserver"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"
	"wallet-checkpoint-monitor/internal/infrastructure/messaging"
	"wallet-checkpoint-monitor/internal/infrastructure/ratelimit"
	"wallet-checkpoint-monitor/internal/infrastructure/telegram"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.NewLogger(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Create FX application
	app := fx.New(
		// Provide dependencies
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.Explorer),
		fx.Supply(&cfg.Schedule),
		fx.Supply(&cfg.Telegram),
		fx.Supply(&cfg.NATS),
		fx.Supply(&cfg.HTTP),

		// Infrastructure providers
		fx.Provide(
			ratelimit.New,
			fx.Annotate(explorer.NewEtherscanClient, fx.As(new(domain_service.ExplorerClient))),
			telegram.NewBot,
			messaging.NewNATSResponder,
			httpserver.NewServer,
		),

		// Domain services
		fx.Provide(
			func(cfg *config.Config) *domain_service.ReportFormatter {
				return domain_service.NewReportFormatter(cfg.Explorer.AddressURL)
			},
			func() domain_service.Picker {
				return domain_service.NewRandomPicker(time.Now().UnixNano())
			},
		),

		// Application providers
		fx.Provide(
			app_service.NewRateLimitedFetcher,
			fx.Annotate(app_service.NewReportApplicationService, fx.As(new(domain_service.ReportService))),
			app_service.NewCommandHandler,
			selectNotifier,
			app_service.NewScheduler,
		),

		// Lifecycle hooks
		fx.Invoke(startTransports),
		fx.Invoke(startHTTPServer),
		fx.Invoke(startScheduler),

		// Configure logging
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down application...")

	// Stop the application
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped successfully")
}

// selectNotifier picks where scheduled reports are delivered: Telegram first,
// then NATS, else the log
func selectNotifier(
	cfg *config.Config,
	bot *telegram.Bot,
	responder *messaging.NATSResponder,
	log *logger.Logger,
) domain_service.Notifier {
	switch {
	case cfg.Telegram.Enabled:
		return bot
	case cfg.NATS.Enabled:
		return responder
	default:
		return app_service.NewLogNotifier(log)
	}
}

// startTransports connects the chat and messaging transports
func startTransports(
	lifecycle fx.Lifecycle,
	bot *telegram.Bot,
	responder *messaging.NATSResponder,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting transports...")

			if err := bot.Connect(); err != nil {
				return fmt.Errorf("failed to start Telegram bot: %w", err)
			}
			if err := responder.Connect(); err != nil {
				return fmt.Errorf("failed to connect to NATS: %w", err)
			}

			log.Info("Transports started successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping transports...")
			bot.Disconnect()
			return responder.Disconnect()
		},
	})
}

// startHTTPServer starts the health and report endpoints
func startHTTPServer(lifecycle fx.Lifecycle, server *httpserver.Server) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
}

// startScheduler starts the periodic status report
func startScheduler(
	lifecycle fx.Lifecycle,
	scheduler *app_service.Scheduler,
	cfg *config.Config,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Schedule.Enabled {
				log.Info("Scheduled status reports are disabled")
				return nil
			}
			log.Info("Scheduling status reports",
				zap.Duration("interval", cfg.Schedule.Interval),
				zap.Bool("has_recipient", cfg.Schedule.Recipient != ""))
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}
