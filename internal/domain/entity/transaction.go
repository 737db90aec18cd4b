package entity

import (
	"time"
)

// Explorer status values carried in the txlist response envelope
const (
	ExplorerStatusOK       = "1"
	ExplorerStatusNotOK    = "0"
	NoTransactionsFoundMsg = "No transactions found"
)

// Transaction represents one account transaction as reported by the explorer.
// Each one counts as a checkpoint for the wallet.
type Transaction struct {
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	BlockNumber uint64    `json:"block_number"`
	Timestamp   time.Time `json:"timestamp"`
}

// QueryWindow selects which slice of an address history is requested
type QueryWindow struct {
	Page   int
	Offset int
	// StartBlock is only sent when non-zero
	StartBlock uint64
}

// LatestTransactionWindow asks for the single most recent transaction
func LatestTransactionWindow() QueryWindow {
	return QueryWindow{Page: 1, Offset: 1}
}

// CheckpointWindow asks for up to size transactions starting at startBlock
func CheckpointWindow(size int, startBlock uint64) QueryWindow {
	return QueryWindow{Page: 1, Offset: size, StartBlock: startBlock}
}

// TxListResult is the decoded txlist envelope. A result is either accepted
// (Status "1") or rejected by the explorer with a reason.
type TxListResult struct {
	Status       string
	Message      string
	Transactions []Transaction
	// Reason holds the explorer's explanation when it rejected the query
	Reason string
}

// OK reports whether the explorer accepted the query
func (r *TxListResult) OK() bool {
	return r.Status == ExplorerStatusOK
}

// NoTransactions reports the explorer's "empty history" answer, which comes
// back with a non-success status but is not a failure for status reports.
func (r *TxListResult) NoTransactions() bool {
	return !r.OK() && len(r.Transactions) == 0 && r.Message == NoTransactionsFoundMsg
}

// Latest returns the most recent transaction, relying on descending sort
func (r *TxListResult) Latest() (Transaction, bool) {
	if len(r.Transactions) == 0 {
		return Transaction{}, false
	}
	return r.Transactions[0], true
}
