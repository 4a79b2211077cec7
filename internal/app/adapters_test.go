package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/app"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConnect_NothingSelected(t *testing.T) {
	a, err := app.Connect(context.Background(), &config.Config{}, app.Selection{}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Nil(t, a.Repo)
	assert.Nil(t, a.Publisher)
	assert.Empty(t, a.Checks)
}

func TestConnect_MissingSettings(t *testing.T) {
	tests := []struct {
		name    string
		sel     app.Selection
		wantErr string
	}{
		{name: "persist without database", sel: app.Selection{Persist: true}, wantErr: "DATABASE_URL"},
		{name: "publish without brokers", sel: app.Selection{Publish: true}, wantErr: "KAFKA_BROKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Connect(context.Background(), &config.Config{}, tt.sel, discardLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConnect_Publisher(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:  []string{"localhost:9092"},
		KafkaClientID: "risk-analysis-test",
		KafkaTopic:    "fraud.events",
	}

	a, err := app.Connect(context.Background(), cfg, app.Selection{Publish: true}, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, a.Publisher)
	assert.Nil(t, a.Repo)
	assert.NoError(t, a.Close())
}
