package service

import (
	"context"

	"wallet-checkpoint-monitor/internal/domain/entity"
	"wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"
	"wallet-checkpoint-monitor/internal/infrastructure/ratelimit"

	"go.uber.org/zap"
)

// FetchOutcome is the result of querying one address. Exactly one of Result
// and Err is set.
type FetchOutcome struct {
	Address string
	Result  *entity.TxListResult
	Err     error
}

// RateLimitedFetcher queries the explorer one address at a time, waiting on
// the limiter before every request
type RateLimitedFetcher struct {
	client  service.ExplorerClient
	limiter ratelimit.Limiter
	logger  *logger.Logger
}

// NewRateLimitedFetcher creates a new fetcher
func NewRateLimitedFetcher(client service.ExplorerClient, limiter ratelimit.Limiter, logger *logger.Logger) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		client:  client,
		limiter: limiter,
		logger:  logger.WithComponent("fetcher"),
	}
}

// Fetch waits for the limiter and queries a single address. Failures are
// logged and returned in the outcome, never retried.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, address string, window entity.QueryWindow) FetchOutcome {
	outcome := FetchOutcome{Address: address}

	if err := f.limiter.Wait(ctx); err != nil {
		f.logger.Error("Rate limiter wait aborted", zap.String("address", address), zap.Error(err))
		outcome.Err = err
		return outcome
	}

	result, err := f.client.ListTransactions(ctx, address, window)
	if err != nil {
		f.logger.Error("Failed to fetch transactions", zap.String("address", address), zap.Error(err))
		outcome.Err = err
		return outcome
	}

	outcome.Result = result
	return outcome
}

// FetchAll fetches every address in order. One outcome per address is
// returned, in input order, whatever happened to its neighbours.
func (f *RateLimitedFetcher) FetchAll(ctx context.Context, addresses []string, window entity.QueryWindow) []FetchOutcome {
	outcomes := make([]FetchOutcome, 0, len(addresses))
	for _, address := range addresses {
		outcomes = append(outcomes, f.Fetch(ctx, address, window))
	}
	return outcomes
}
