package service

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"
)

// NoCheckpointsLabel is shown for wallets without any transaction
const NoCheckpointsLabel = "no checkpoints yet"

// CheckpointMarkers is the palette decorative markers are drawn from
var CheckpointMarkers = []string{
	"🤖", "👽", "👻", "🐶", "🐱", "🐭", "🐹", "🚀", "👾", "🦾", "🧨",
	"🎃", "🐰", "🦊", "⭐", "🌟", "✨", "⚡", "🔥", "💥", "☃️", "🌸",
}

// Picker picks an index in [0, n)
type Picker interface {
	Intn(n int) int
}

// lockedPicker makes a math/rand source safe to share between report cycles
type lockedPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomPicker returns a goroutine-safe Picker seeded with seed
func NewRandomPicker(seed int64) Picker {
	return &lockedPicker{rnd: rand.New(rand.NewSource(seed))}
}

func (p *lockedPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Intn(n)
}

// PickMarker draws a decorative marker, or nothing without a picker
func PickMarker(picker Picker) string {
	if picker == nil || len(CheckpointMarkers) == 0 {
		return ""
	}
	return CheckpointMarkers[picker.Intn(len(CheckpointMarkers))]
}

// RecencyLabel buckets elapsed hours into a readable label
func RecencyLabel(elapsedHours float64) string {
	switch {
	case elapsedHours < 5.0/60:
		return "less than a minute"
	case elapsedHours < 24:
		return fmt.Sprintf("%d minutes", int64(math.Round(elapsedHours*60)))
	default:
		return strconv.FormatFloat(elapsedHours/24, 'f', 2, 64) + " days"
	}
}

// NewRecency describes the time since tx, or nil without a transaction
func NewRecency(now time.Time, tx *entity.Transaction) *entity.Recency {
	if tx == nil {
		return nil
	}
	hours := ElapsedHours(now, tx.Timestamp)
	return &entity.Recency{
		Elapsed: time.Duration(hours * float64(time.Hour)),
		Label:   RecencyLabel(hours),
	}
}

// CountCheckpoints counts the records of a windowed query, never beyond the
// window size
func CountCheckpoints(result *entity.TxListResult, window entity.QueryWindow) int {
	if result == nil {
		return 0
	}
	count := len(result.Transactions)
	if window.Offset > 0 && count > window.Offset {
		count = window.Offset
	}
	return count
}

// SummarizeCheckpoints builds the checkpoint entry for one address
func SummarizeCheckpoints(address string, result *entity.TxListResult, window entity.QueryWindow, now time.Time, picker Picker) entity.CheckpointSummary {
	summary := entity.CheckpointSummary{
		Address:         address,
		CheckpointCount: CountCheckpoints(result, window),
		Marker:          PickMarker(picker),
	}
	if latest, ok := result.Latest(); ok {
		summary.LastCheckpoint = NewRecency(now, &latest)
	}
	return summary
}
