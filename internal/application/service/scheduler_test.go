package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReports struct {
	mu          sync.Mutex
	statusCalls int
	panics      bool
}

func (s *stubReports) StatusReport(ctx context.Context) string {
	s.mu.Lock()
	s.statusCalls++
	s.mu.Unlock()
	if s.panics {
		panic("index out of range")
	}
	return "status report"
}

func (s *stubReports) CheckpointReport(ctx context.Context) string { return "checkpoint report" }

func (s *stubReports) AggregateCheckpointReport(ctx context.Context) string {
	return "aggregate report"
}

func (s *stubReports) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusCalls
}

type delivery struct {
	recipient string
	message   string
}

type recordingNotifier struct {
	mu         sync.Mutex
	deliveries []delivery
	err        error
}

func (n *recordingNotifier) Notify(ctx context.Context, recipient string, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deliveries = append(n.deliveries, delivery{recipient: recipient, message: message})
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.deliveries)
}

func TestDeliverSendsStatusReport(t *testing.T) {
	reports := &stubReports{}
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(&config.ScheduleConfig{Recipient: "42", Interval: time.Hour}, reports, notifier, logger.NewNopLogger())

	require.NoError(t, scheduler.Deliver(context.Background()))

	assert.Equal(t, []delivery{{recipient: "42", message: "status report"}}, notifier.deliveries)
}

func TestDeliverWithoutRecipientIsNoop(t *testing.T) {
	reports := &stubReports{}
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(&config.ScheduleConfig{Interval: time.Hour}, reports, notifier, logger.NewNopLogger())

	require.NoError(t, scheduler.Deliver(context.Background()))

	assert.Zero(t, notifier.count())
	assert.Zero(t, reports.calls())
}

func TestDeliverReportsNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("chat not found")}
	scheduler := NewScheduler(&config.ScheduleConfig{Recipient: "42", Interval: time.Hour}, &stubReports{}, notifier, logger.NewNopLogger())

	err := scheduler.Deliver(context.Background())
	assert.ErrorContains(t, err, "chat not found")
}

func TestDeliverRecoversFromPanic(t *testing.T) {
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(&config.ScheduleConfig{Recipient: "42", Interval: time.Hour}, &stubReports{panics: true}, notifier, logger.NewNopLogger())

	err := scheduler.Deliver(context.Background())
	assert.ErrorContains(t, err, "panicked")
	assert.Zero(t, notifier.count())
}

func TestSchedulerTicks(t *testing.T) {
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(&config.ScheduleConfig{Recipient: "42", Interval: 10 * time.Millisecond}, &stubReports{}, notifier, logger.NewNopLogger())

	require.NoError(t, scheduler.Start())
	assert.Eventually(t, func() bool { return notifier.count() >= 2 }, time.Second, 5*time.Millisecond)
	scheduler.Stop()
}

func TestSchedulerRejectsInvalidInterval(t *testing.T) {
	scheduler := NewScheduler(&config.ScheduleConfig{Recipient: "42"}, &stubReports{}, &recordingNotifier{}, logger.NewNopLogger())

	assert.Error(t, scheduler.Start())
	scheduler.Stop()
}

func TestLogNotifier(t *testing.T) {
	notifier := NewLogNotifier(logger.NewNopLogger())
	assert.NoError(t, notifier.Notify(context.Background(), "42", "report"))
}
