package entity

import (
	"time"
)

// WalletStatus is the activity classification of a monitored wallet
type WalletStatus string

const (
	WalletStatusActive       WalletStatus = "✅ Active"
	WalletStatusDisconnected WalletStatus = "❌ Disconnected"
	WalletStatusError        WalletStatus = "❌ Error"
)

// Recency describes how long ago the last checkpoint happened
type Recency struct {
	Elapsed time.Duration `json:"elapsed"`
	Label   string        `json:"label"`
}

// WalletStatusRecord is one entry of a status report
type WalletStatusRecord struct {
	Address string       `json:"address"`
	Status  WalletStatus `json:"status"`
	// LastCheckpoint is nil when the wallet has no transactions or the fetch failed
	LastCheckpoint *Recency `json:"last_checkpoint,omitempty"`
}

// CheckpointSummary is one entry of a checkpoint report
type CheckpointSummary struct {
	Address         string   `json:"address"`
	CheckpointCount int      `json:"checkpoint_count"`
	LastCheckpoint  *Recency `json:"last_checkpoint,omitempty"`
	Marker          string   `json:"marker,omitempty"`
	Failed          bool     `json:"failed"`
}

// AggregateCheckpointReport sums checkpoints over the aggregate address list
type AggregateCheckpointReport struct {
	TotalCheckpoints      int `json:"total_checkpoints"`
	ProcessedAddressCount int `json:"processed_address_count"`
	TotalAddressCount     int `json:"total_address_count"`
}
