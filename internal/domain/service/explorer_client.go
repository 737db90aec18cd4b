package service

import (
	"context"

	"wallet-checkpoint-monitor/internal/domain/entity"
)

// ExplorerClient queries an explorer for an address's transaction list
type ExplorerClient interface {
	// ListTransactions returns the decoded txlist envelope for the window.
	// Transport and decoding failures come back as errors; explorer
	// rejections come back as a non-OK result.
	ListTransactions(ctx context.Context, address string, window entity.QueryWindow) (*entity.TxListResult, error)
}
