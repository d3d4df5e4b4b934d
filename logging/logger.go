// Package logging builds the per-component logrus loggers used across deck.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger returns the logger for component, building it from the
// logging section of the default config on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := newLogger(component, logCfg)
	loggers[component] = entry
	return entry
}

// Reset drops every cached logger so the next NewLogger call rereads the
// configuration.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}

func newLogger(component string, logCfg Config) *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(levelFor(logCfg))
	logger.SetReportCaller(logCfg.ReportCaller || os.Getenv("DECK_LOG_CALLER") == "true")
	logger.SetFormatter(formatterFor(logCfg.Format))

	sinks := openSinks(logger, LogFilePath(component, logCfg, time.Now()), logCfg.File.Enabled)
	if shouldLogToStderr(logCfg, logger.GetLevel()) {
		sinks = append(sinks, GetGlobalOutput())
	}
	switch len(sinks) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(sinks[0])
	default:
		logger.SetOutput(io.MultiWriter(sinks...))
	}

	return logger.WithField("component", component)
}

// levelFor resolves DECK_LOG_LEVEL, then logging.level, then info.
func levelFor(logCfg Config) logrus.Level {
	name := os.Getenv("DECK_LOG_LEVEL")
	if name == "" {
		name = logCfg.Level
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func formatterFor(format FormatConfig) logrus.Formatter {
	switch format.Preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	default:
		return &TextFormatter{Config: format}
	}
}

// openSinks opens the log file for appending. Failures are only reported
// when the file was configured explicitly.
func openSinks(logger *logrus.Logger, path string, explicit bool) []io.Writer {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		if explicit {
			logger.WithError(err).Warn("Failed to create log directory")
		}
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		if explicit {
			logger.WithError(err).WithField("path", path).Warn("Failed to open log file")
		}
		return nil
	}
	return []io.Writer{file}
}

// shouldLogToStderr applies logging.format.structured_to_stderr. In auto mode
// stderr gets structured lines only while debugging or when it is not a TTY.
func shouldLogToStderr(logCfg Config, level logrus.Level) bool {
	switch logCfg.Format.StructuredToStderr {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("DECK_DEBUG") == "1" || level >= logrus.DebugLevel {
		return true
	}
	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// LogDir is the default directory for log files:
// $XDG_STATE_HOME/deck/logs, falling back to ~/.local/state/deck/logs.
func LogDir() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "deck", "logs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "deck", "logs")
	}
	return ""
}

// LogFilePath returns the file a component logs to on day now.
func LogFilePath(component string, logCfg Config, now time.Time) string {
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		if path, err := pathutil.Expand(logCfg.File.Path); err == nil {
			return path
		}
		return logCfg.File.Path
	}
	dir := LogDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", component, now.Format("2006-01-02")))
}
