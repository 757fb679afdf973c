package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"hotel/config"
	"hotel/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TagsServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, "hotel", logger.ComponentSweep)
	l.Info().Str("date", "2025-03-10").Msg("no-show sweep finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "hotel", entry["service"])
	assert.Equal(t, logger.ComponentSweep, entry["component"])
	assert.Equal(t, "2025-03-10", entry["date"])
	assert.Equal(t, "no-show sweep finished", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  zerolog.Level
	}{
		{name: "debug", value: "debug", want: zerolog.DebugLevel},
		{name: "warn", value: "warn", want: zerolog.WarnLevel},
		{name: "error", value: "error", want: zerolog.ErrorLevel},
		{name: "empty falls back to info", value: "", want: zerolog.InfoLevel},
		{name: "unknown falls back to info", value: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(tt.value))
		})
	}
}

func TestInit(t *testing.T) {
	original, originalLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "warn"

	logger.Init(cfg, logger.ComponentWorker)

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("failed to lock booking room"))

	assert.Contains(t, buf.String(), "failed to lock booking room")
	assert.Contains(t, buf.String(), "logger_test.go")
}
