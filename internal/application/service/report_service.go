package service

import (
	"context"
	"errors"
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"
	"wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"go.uber.org/zap"
)

var _ service.ReportService = (*ReportApplicationService)(nil)

// ReportApplicationService implements ReportService on top of the explorer
type ReportApplicationService struct {
	wallets          config.WalletsConfig
	checkpointWindow entity.QueryWindow
	fetcher          *RateLimitedFetcher
	formatter        *service.ReportFormatter
	picker           service.Picker
	now              func() time.Time
	logger           *logger.Logger
}

// NewReportApplicationService creates a new report service
func NewReportApplicationService(
	cfg *config.Config,
	fetcher *RateLimitedFetcher,
	formatter *service.ReportFormatter,
	picker service.Picker,
	logger *logger.Logger,
) *ReportApplicationService {
	return &ReportApplicationService{
		wallets:          cfg.Wallets,
		checkpointWindow: entity.CheckpointWindow(cfg.Explorer.CheckpointWindow, cfg.Explorer.CheckpointStartBlock),
		fetcher:          fetcher,
		formatter:        formatter,
		picker:           picker,
		now:              time.Now,
		logger:           logger.WithComponent("report-service"),
	}
}

// WithClock replaces the wall clock used for elapsed-time computations
func (s *ReportApplicationService) WithClock(now func() time.Time) *ReportApplicationService {
	s.now = now
	return s
}

// StatusReport classifies every wallet of the primary list
func (s *ReportApplicationService) StatusReport(ctx context.Context) string {
	addresses, message, ok := s.resolve(s.wallets.Addresses, "addresses", service.InvalidAddressesMessage)
	if !ok {
		return message
	}

	records := s.CollectStatuses(ctx, addresses)
	return s.formatter.FormatStatusReport(records)
}

// CollectStatuses fetches the latest transaction of every address and
// classifies it
func (s *ReportApplicationService) CollectStatuses(ctx context.Context, addresses []string) []entity.WalletStatusRecord {
	outcomes := s.fetcher.FetchAll(ctx, addresses, entity.LatestTransactionWindow())

	records := make([]entity.WalletStatusRecord, 0, len(outcomes))
	for _, outcome := range outcomes {
		records = append(records, s.statusRecord(outcome))
	}

	s.logger.Info("Status report collected", zap.Int("addresses", len(records)))
	return records
}

func (s *ReportApplicationService) statusRecord(outcome FetchOutcome) entity.WalletStatusRecord {
	record := entity.WalletStatusRecord{Address: outcome.Address}

	if !s.usable(outcome) {
		record.Status = entity.WalletStatusError
		return record
	}

	latest, ok := outcome.Result.Latest()
	if !ok {
		record.Status = entity.WalletStatusDisconnected
		return record
	}

	now := s.now()
	record.Status = service.ClassifyActivity(now, &latest)
	record.LastCheckpoint = service.NewRecency(now, &latest)

	s.logger.Debug("Classified wallet",
		zap.String("address", outcome.Address),
		zap.Float64("elapsed_hours", service.ElapsedHours(now, latest.Timestamp)),
		zap.String("status", string(record.Status)))

	return record
}

// CheckpointReport counts checkpoints for every wallet of the primary list
func (s *ReportApplicationService) CheckpointReport(ctx context.Context) string {
	addresses, message, ok := s.resolve(s.wallets.Addresses, "addresses", service.InvalidAddressesMessage)
	if !ok {
		return message
	}

	summaries := s.CollectCheckpoints(ctx, addresses)
	return s.formatter.FormatCheckpointReport(summaries)
}

// CollectCheckpoints fetches the checkpoint window of every address
func (s *ReportApplicationService) CollectCheckpoints(ctx context.Context, addresses []string) []entity.CheckpointSummary {
	outcomes := s.fetcher.FetchAll(ctx, addresses, s.checkpointWindow)

	summaries := make([]entity.CheckpointSummary, 0, len(outcomes))
	for _, outcome := range outcomes {
		if !s.usable(outcome) {
			summaries = append(summaries, entity.CheckpointSummary{Address: outcome.Address, Failed: true})
			continue
		}
		summaries = append(summaries, service.SummarizeCheckpoints(outcome.Address, outcome.Result, s.checkpointWindow, s.now(), s.picker))
	}

	s.logger.Info("Checkpoint report collected", zap.Int("addresses", len(summaries)))
	return summaries
}

// AggregateCheckpointReport sums checkpoints over the aggregate list
func (s *ReportApplicationService) AggregateCheckpointReport(ctx context.Context) string {
	addresses, message, ok := s.resolve(s.wallets.AllAddresses, "all_addresses", service.InvalidAllAddressesMessage)
	if !ok {
		return message
	}

	report := s.CountCheckpoints(ctx, addresses)
	return s.formatter.FormatAggregateReport(report)
}

// CountCheckpoints validates, queries and sums checkpoints. Invalid addresses
// and explorer rejections are skipped but still count toward the total.
func (s *ReportApplicationService) CountCheckpoints(ctx context.Context, addresses []string) entity.AggregateCheckpointReport {
	report := entity.AggregateCheckpointReport{TotalAddressCount: len(addresses)}

	for _, address := range addresses {
		if err := service.ValidateAddress(address); err != nil {
			s.logger.Warn("Skipping invalid address", zap.String("address", address), zap.Error(err))
			continue
		}

		outcome := s.fetcher.Fetch(ctx, address, s.checkpointWindow)
		if outcome.Err != nil {
			continue
		}
		if !outcome.Result.OK() {
			s.logger.Error("Explorer rejected address",
				zap.String("address", address),
				zap.Error(explorerError(outcome.Result)))
			continue
		}

		report.TotalCheckpoints += service.CountCheckpoints(outcome.Result, s.checkpointWindow)
		report.ProcessedAddressCount++
	}

	s.logger.Info("Aggregate checkpoints counted",
		zap.Int("total_checkpoints", report.TotalCheckpoints),
		zap.Int("processed", report.ProcessedAddressCount),
		zap.Int("total", report.TotalAddressCount))

	return report
}

// resolve decodes an address list, turning configuration problems into the
// message shown to the user
func (s *ReportApplicationService) resolve(raw string, key string, invalidMessage string) ([]string, string, bool) {
	addresses, err := service.ResolveAddresses(raw)
	switch {
	case errors.Is(err, entity.ErrNoAddresses):
		s.logger.Error("Address list is not defined or is empty", zap.String("key", key))
		return nil, service.NoAddressesMessage, false
	case err != nil:
		s.logger.Error("Failed to parse address list", zap.String("key", key), zap.Error(err))
		return nil, invalidMessage, false
	case len(addresses) == 0:
		s.logger.Warn("Address list has no entries", zap.String("key", key))
		return nil, service.NoAddressesMessage, false
	}
	return addresses, "", true
}

// usable reports whether an outcome can be turned into a record. Empty
// histories are usable, explorer rejections are not.
func (s *ReportApplicationService) usable(outcome FetchOutcome) bool {
	if outcome.Err != nil {
		return false
	}
	if !outcome.Result.OK() && !outcome.Result.NoTransactions() {
		s.logger.Error("Explorer rejected address",
			zap.String("address", outcome.Address),
			zap.Error(explorerError(outcome.Result)))
		return false
	}
	return true
}

func explorerError(result *entity.TxListResult) error {
	return &entity.ExplorerError{
		Status:  result.Status,
		Message: result.Message,
		Reason:  result.Reason,
	}
}
