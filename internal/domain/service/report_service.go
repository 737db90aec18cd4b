package service

import (
	"context"
)

// ReportService produces the user-facing reports. Every method returns
// displayable markup, including for configuration problems.
type ReportService interface {
	// StatusReport classifies every configured wallet
	StatusReport(ctx context.Context) string

	// CheckpointReport counts checkpoints for every configured wallet
	CheckpointReport(ctx context.Context) string

	// AggregateCheckpointReport sums checkpoints across the aggregate list
	AggregateCheckpointReport(ctx context.Context) string
}

// Notifier delivers a rendered report to a recipient
type Notifier interface {
	Notify(ctx context.Context, recipient string, message string) error
}
