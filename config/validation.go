package config

import (
	"fmt"
	"net"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/grovetools/deck/errors"
	"github.com/moby/patternmatcher"
)

var symbolRegex = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=]*$`)

// Validate checks if the configuration is valid. It expects defaults to have
// been applied.
func (c *Config) Validate() error {
	if err := validateCatalog(&c.Catalog); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid catalog configuration")
	}

	if c.Launch.StaggerMs < 1 {
		return errors.New(errors.ErrCodeConfigValidation, "launch.stagger_ms must be at least 1").
			WithDetail("stagger_ms", c.Launch.StaggerMs)
	}
	switch c.Launch.PopupBackend {
	case BackendChromium, BackendSystem:
	default:
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("launch.popup_backend must be '%s' or '%s'", BackendChromium, BackendSystem)).
			WithDetail("popup_backend", c.Launch.PopupBackend)
	}

	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "screen dimensions cannot be negative")
	}
	if (c.Screen.Width == 0) != (c.Screen.Height == 0) {
		return errors.New(errors.ErrCodeConfigValidation, "screen.width and screen.height must be set together")
	}

	if c.Ticker.IntervalSeconds < 1 {
		return errors.New(errors.ErrCodeConfigValidation, "ticker.interval_seconds must be at least 1")
	}
	for _, sym := range c.Ticker.Symbols {
		if !symbolRegex.MatchString(sym) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid ticker symbol: %q", sym)).
				WithDetail("symbol", sym)
		}
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "server.addr must be host:port").
			WithDetail("addr", c.Server.Addr)
	}

	return nil
}

func validateCatalog(cat *CatalogConfig) error {
	if cat.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", cat.PageSize)
	}
	if err := validatePath("catalog.file", cat.File); err != nil {
		return err
	}
	if cat.File != "" {
		switch strings.ToLower(filepath.Ext(cat.File)) {
		case ".yml", ".yaml", ".toml":
		default:
			return fmt.Errorf("catalog.file must be .yml, .yaml or .toml: %s", cat.File)
		}
	}
	for _, p := range cat.Hidden {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("hidden patterns cannot be empty")
		}
	}
	if _, err := patternmatcher.New(cat.Hidden); err != nil {
		return fmt.Errorf("invalid hidden pattern: %w", err)
	}
	return nil
}

// validatePath validates that a path is appropriate for the current OS
func validatePath(fieldName, path string) error {
	if path == "" {
		return nil
	}

	// Check for Windows absolute paths on Unix systems
	if runtime.GOOS != "windows" && filepath.IsAbs(path) && strings.Contains(path, "\\") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Windows-style path on Unix system", fieldName)).
			WithDetail("path", path)
	}

	// Check for Unix absolute paths on Windows systems
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Unix-style path on Windows system", fieldName)).
			WithDetail("path", path)
	}

	return nil
}
