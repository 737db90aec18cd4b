package service

import (
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"
)

// ActiveThresholdHours is the largest gap since the last transaction that
// still counts as active
const ActiveThresholdHours = 1.2

// ElapsedHours returns the hours between a transaction and now, with the
// sub-second precision of now preserved
func ElapsedHours(now time.Time, txTime time.Time) float64 {
	nowSeconds := float64(now.UnixMilli()) / 1000
	return (nowSeconds - float64(txTime.Unix())) / 3600
}

// ClassifyElapsed maps elapsed hours to an activity status
func ClassifyElapsed(elapsedHours float64) entity.WalletStatus {
	if elapsedHours <= ActiveThresholdHours {
		return entity.WalletStatusActive
	}
	return entity.WalletStatusDisconnected
}

// ClassifyActivity derives the status from the latest transaction. A wallet
// without transactions is disconnected.
func ClassifyActivity(now time.Time, latest *entity.Transaction) entity.WalletStatus {
	if latest == nil {
		return entity.WalletStatusDisconnected
	}
	return ClassifyElapsed(ElapsedHours(now, latest.Timestamp))
}
