package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"
	domain_service "wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"
)

var (
	testNow      = time.Unix(1_700_000_000, 0)
	errExplorer  = errors.New("connection reset by peer")
	addressURL   = "https://sepolia.etherscan.io/address/"
	walletA      = "0x1111111111111111111111111111111111111111"
	walletB      = "0x2222222222222222222222222222222222222222"
	walletC      = "0x3333333333333333333333333333333333333333"
	walletD      = "0x4444444444444444444444444444444444444444"
	walletFailed = "0x5555555555555555555555555555555555555555"
)

type call struct {
	address string
	window  entity.QueryWindow
}

// fakeExplorer answers from canned results; addresses without one fail
type fakeExplorer struct {
	mu      sync.Mutex
	results map[string]*entity.TxListResult
	calls   []call
	events  *[]string
}

func (f *fakeExplorer) ListTransactions(ctx context.Context, address string, window entity.QueryWindow) (*entity.TxListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call{address: address, window: window})
	if f.events != nil {
		*f.events = append(*f.events, "fetch:"+address)
	}

	result, ok := f.results[address]
	if !ok {
		return nil, errExplorer
	}
	return result, nil
}

func (f *fakeExplorer) addresses() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.address)
	}
	return out
}

// countingLimiter records waits instead of sleeping
type countingLimiter struct {
	mu     sync.Mutex
	waits  int
	events *[]string
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.waits++
	if l.events != nil {
		*l.events = append(*l.events, "wait")
	}
	return ctx.Err()
}

type fixedPicker int

func (p fixedPicker) Intn(n int) int { return int(p) % n }

func okResult(timestamps ...time.Time) *entity.TxListResult {
	txs := make([]entity.Transaction, 0, len(timestamps))
	for _, ts := range timestamps {
		txs = append(txs, entity.Transaction{Timestamp: ts})
	}
	return &entity.TxListResult{Status: entity.ExplorerStatusOK, Message: "OK", Transactions: txs}
}

func emptyResult() *entity.TxListResult {
	return &entity.TxListResult{Status: entity.ExplorerStatusNotOK, Message: entity.NoTransactionsFoundMsg}
}

func rejectedResult() *entity.TxListResult {
	return &entity.TxListResult{Status: entity.ExplorerStatusNotOK, Message: "NOTOK", Reason: "Max rate limit reached"}
}

func testConfig(addresses, allAddresses string) *config.Config {
	return &config.Config{
		Explorer: config.ExplorerConfig{
			AddressURL:           addressURL,
			CheckpointStartBlock: 7852278,
			CheckpointWindow:     2000,
		},
		Wallets: config.WalletsConfig{
			Addresses:    addresses,
			AllAddresses: allAddresses,
		},
	}
}

func newTestReportService(cfg *config.Config, explorer *fakeExplorer, limiter *countingLimiter) *ReportApplicationService {
	log := logger.NewNopLogger()
	fetcher := NewRateLimitedFetcher(explorer, limiter, log)
	return NewReportApplicationService(cfg, fetcher, domain_service.NewReportFormatter(addressURL), fixedPicker(0), log).
		WithClock(func() time.Time { return testNow })
}
