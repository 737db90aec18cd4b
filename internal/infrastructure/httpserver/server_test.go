package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

type stubReports struct{}

func (stubReports) StatusReport(ctx context.Context) string     { return "status" }
func (stubReports) CheckpointReport(ctx context.Context) string { return "checkpoints" }
func (stubReports) AggregateCheckpointReport(ctx context.Context) string {
	return "aggregate"
}

func TestRoutes(t *testing.T) {
	server := NewServer(&config.HTTPConfig{Enabled: true, Port: 0}, stubReports{}, logger.NewNopLogger())

	tests := []struct {
		path        string
		body        string
		contentType string
	}{
		{"/health", `{"status":"ok"}`, "application/json; charset=utf-8"},
		{"/reports/status", "status", htmlContentType},
		{"/reports/checkpoints", "checkpoints", htmlContentType},
		{"/reports/aggregate", "aggregate", htmlContentType},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	server := NewServer(&config.HTTPConfig{Enabled: true}, stubReports{}, logger.NewNopLogger())

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDisabledServerStartsAndStops(t *testing.T) {
	server := NewServer(&config.HTTPConfig{Enabled: false}, stubReports{}, logger.NewNopLogger())

	assert.NoError(t, server.Start())
	assert.NoError(t, server.Stop(context.Background()))
}
