package service

import (
	"testing"
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassifyElapsedBoundary(t *testing.T) {
	tests := []struct {
		hours float64
		want  entity.WalletStatus
	}{
		{0, entity.WalletStatusActive},
		{0.5, entity.WalletStatusActive},
		{1.2, entity.WalletStatusActive},
		{1.2000001, entity.WalletStatusDisconnected},
		{5, entity.WalletStatusDisconnected},
		{24 * 30, entity.WalletStatusDisconnected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyElapsed(tt.hours), "elapsed %v hours", tt.hours)
	}
}

func TestElapsedHours(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.Equal(t, 1.2, ElapsedHours(now, now.Add(-72*time.Minute)))
	assert.Equal(t, 0.0, ElapsedHours(now, now))
	assert.InDelta(t, 0.5/3600, ElapsedHours(now.Add(500*time.Millisecond), now), 1e-12)
}

func TestClassifyActivity(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	exactlyAtThreshold := &entity.Transaction{Timestamp: now.Add(-72 * time.Minute)}
	assert.Equal(t, entity.WalletStatusActive, ClassifyActivity(now, exactlyAtThreshold))

	oneSecondLate := &entity.Transaction{Timestamp: now.Add(-72*time.Minute - time.Second)}
	assert.Equal(t, entity.WalletStatusDisconnected, ClassifyActivity(now, oneSecondLate))

	assert.Equal(t, entity.WalletStatusDisconnected, ClassifyActivity(now, nil))
}
