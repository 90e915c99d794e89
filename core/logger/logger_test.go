package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/logger"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("mailpush"),
		logger.WithOutput(&buf),
	)

	log.Info("session registered", logger.Identity("carol@x"))
	log.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "session registered", rec["msg"])
	assert.Equal(t, "carol@x", rec["identity"])
	assert.Equal(t, "mailpush", rec["service"])
	assert.Equal(t, "production", rec["env"])
}

func TestNew_LevelOverride(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("mailpush"),
		logger.WithLevel(slog.LevelWarn),
		logger.WithOutput(&buf),
	)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		logger.Discard().Error("nothing", logger.Error(nil))
	})
}

func TestForEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env     string
		wantEnv string
		json    bool
	}{
		{"production", "production", true},
		{"PROD", "production", true},
		{"staging", "staging", true},
		{"stage", "staging", true},
		{"development", "development", false},
		{"", "development", false},
	}

	for _, tt := range tests {
		t.Run("env_"+tt.wantEnv+"_"+tt.env, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.New(logger.ForEnv(tt.env, "mailpush"), logger.WithOutput(&buf))
			log.Info("ready")

			if tt.json {
				var rec map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
				assert.Equal(t, tt.wantEnv, rec["env"])
				assert.Equal(t, "mailpush", rec["service"])
				return
			}
			assert.Contains(t, buf.String(), "env="+tt.wantEnv)
			assert.Contains(t, buf.String(), "source=")
		})
	}
}

func TestWithAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithAttr(slog.String("version", "1.2.3")),
		logger.WithOutput(&buf),
	)
	log.Info("started")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "1.2.3", rec["version"])
}
