package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Commands understood by every transport
const (
	CommandStart          = "start"
	CommandHelp           = "help"
	CommandStatus         = "status"
	CommandCheckpoints    = "checkpoints"
	CommandAllCheckpoints = "allcheckpoints"
)

// ErrUnknownCommand is returned for commands no report answers
var ErrUnknownCommand = errors.New("unknown command")

// CommandHandler maps transport commands onto reports
type CommandHandler struct {
	reports   service.ReportService
	formatter *service.ReportFormatter
	logger    *logger.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(reports service.ReportService, formatter *service.ReportFormatter, logger *logger.Logger) *CommandHandler {
	return &CommandHandler{
		reports:   reports,
		formatter: formatter,
		logger:    logger.WithComponent("command-handler"),
	}
}

// Handle runs one command and returns the reply. A panic while building the
// reply is logged and reported as an error for this command only.
func (h *CommandHandler) Handle(ctx context.Context, command string, sender string) (reply string, err error) {
	command = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(command), "/"))

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Command panicked", zap.String("command", command), zap.Any("panic", r))
			err = fmt.Errorf("command %s panicked: %v", command, r)
		}
	}()

	h.logger.Info("Handling command", zap.String("command", command))

	switch command {
	case CommandStart, CommandHelp:
		return h.formatter.FormatHelp(sender), nil
	case CommandStatus:
		return h.reports.StatusReport(ctx), nil
	case CommandCheckpoints:
		return h.reports.CheckpointReport(ctx), nil
	case CommandAllCheckpoints:
		return h.reports.AggregateCheckpointReport(ctx), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
