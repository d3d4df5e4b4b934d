package logging

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("state dir default", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/tmp/state")
		assert.Equal(t, filepath.Join("/tmp/state", "deck", "logs", "launcher-2026-03-14.log"),
			LogFilePath("launcher", Config{}, day))
	})

	t.Run("configured path", func(t *testing.T) {
		cfg := Config{File: FileSinkConfig{Enabled: true, Path: "/var/log/deck.log"}}
		assert.Equal(t, "/var/log/deck.log", LogFilePath("launcher", cfg, day))
	})

	t.Run("configured path needs enabled", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/tmp/state")
		cfg := Config{File: FileSinkConfig{Path: "/var/log/deck.log"}}
		assert.NotEqual(t, "/var/log/deck.log", LogFilePath("launcher", cfg, day))
	})
}

func TestNewLoggerLevels(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		name  string
		env   string
		cfg   Config
		level logrus.Level
	}{
		{"default", "", Config{}, logrus.InfoLevel},
		{"config", "", Config{Level: "warn"}, logrus.WarnLevel},
		{"env wins", "debug", Config{Level: "warn"}, logrus.DebugLevel},
		{"garbage falls back", "loud", Config{}, logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DECK_LOG_LEVEL", tt.env)
			entry := newLogger("test", tt.cfg)
			assert.Equal(t, tt.level, entry.Logger.GetLevel())
			assert.Equal(t, "test", entry.Data["component"])
		})
	}
}

func TestNewLoggerCaching(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	Reset()
	defer Reset()

	a := NewLogger("engine")
	b := NewLogger("engine")
	c := NewLogger("server")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.WarnLevel,
		Message: "Launch declined",
		Data: logrus.Fields{
			"component": "launcher",
			"mode":      "tabs",
			"count":     3,
			"reason":    "user said no",
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[WARN] Launch declined count=3 mode=tabs reason=\"user said no\"\n", string(out))
}

func TestShouldLogToStderr(t *testing.T) {
	always := Config{Format: FormatConfig{StructuredToStderr: "always"}}
	never := Config{Format: FormatConfig{StructuredToStderr: "never"}}
	assert.True(t, shouldLogToStderr(always, logrus.InfoLevel))
	assert.False(t, shouldLogToStderr(never, logrus.DebugLevel))
	assert.True(t, shouldLogToStderr(Config{}, logrus.DebugLevel), "auto logs when debugging")
}

func TestGlobalOutputRedirect(t *testing.T) {
	var buf bytes.Buffer
	restore := SetGlobalOutput(&buf)

	_, err := GetGlobalOutput().Write([]byte("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "hello"))

	var other bytes.Buffer
	restoreOther := SetGlobalOutput(&other)
	restoreOther()
	_, err = GetGlobalOutput().Write([]byte(" again"))
	require.NoError(t, err)
	assert.Equal(t, "hello again", buf.String())
	assert.Empty(t, other.String())
	restore()
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)
	p.Success("Scheduled 3 tabs")
	p.Field("mode", "tabs")
	p.Fail("Open failed", fmt.Errorf("blocked"))
	assert.Contains(t, buf.String(), "Scheduled 3 tabs")
	assert.Contains(t, buf.String(), "mode")
	assert.Contains(t, buf.String(), "Open failed: blocked")
}
