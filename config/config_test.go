package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CAPNOW_PORT", "CAPNOW_DB_PATH", "CAPNOW_SNAPSHOT_FILE", "CAPNOW_PROGRESS_SOURCE", "CAPNOW_PROGRESS_SCHEDULE", "CAPNOW_LOG_LEVEL", "CAPNOW_DEV_MODE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "leads.db", cfg.DBPath)
	assert.Empty(t, cfg.SnapshotFile)
	assert.Empty(t, cfg.ProgressSource)
	assert.Equal(t, "@every 60s", cfg.ProgressSchedule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CAPNOW_PORT", "9090")
	t.Setenv("CAPNOW_DB_PATH", "/tmp/test-leads.db")
	t.Setenv("CAPNOW_PROGRESS_SOURCE", "https://example.com/progress.json")
	t.Setenv("CAPNOW_PROGRESS_SCHEDULE", "@every 5m")
	t.Setenv("CAPNOW_DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/test-leads.db", cfg.DBPath)
	assert.Equal(t, "https://example.com/progress.json", cfg.ProgressSource)
	assert.Equal(t, "@every 5m", cfg.ProgressSchedule)
	assert.True(t, cfg.DevMode)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("CAPNOW_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8080, DBPath: "leads.db"}, false},
		{"port out of range", Config{Port: 70000, DBPath: "leads.db"}, true},
		{"missing db path", Config{Port: 8080, DBPath: " "}, true},
		{"source without schedule", Config{Port: 8080, DBPath: "leads.db", ProgressSource: "progress.json"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
