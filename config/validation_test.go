package config

import (
	"testing"

	"github.com/grovetools/deck/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"screen set", func(c *Config) { c.Screen.Width, c.Screen.Height = 1280, 720 }, false},
		{"screen half set", func(c *Config) { c.Screen.Width = 1280 }, true},
		{"negative screen", func(c *Config) { c.Screen.Width, c.Screen.Height = -1, 10 }, true},
		{"bad backend", func(c *Config) { c.Launch.PopupBackend = "x11" }, true},
		{"bad addr", func(c *Config) { c.Server.Addr = "localhost" }, true},
		{"bad symbol", func(c *Config) { c.Ticker.Symbols = []string{"not a symbol"} }, true},
		{"index symbol", func(c *Config) { c.Ticker.Symbols = []string{"^GSPC", "BRK.B"} }, false},
		{"catalog file extension", func(c *Config) { c.Catalog.File = "catalog.json" }, true},
		{"empty hidden pattern", func(c *Config) { c.Catalog.Hidden = []string{""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeConfigValidation), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
