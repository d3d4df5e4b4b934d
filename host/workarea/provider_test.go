package workarea

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFromConfig(t *testing.T) {
	p := New(&config.Config{})
	_, ok := p.WorkArea()
	assert.False(t, ok, "zero dimensions are unavailable")

	cfg := &config.Config{Screen: config.ScreenConfig{Width: 1000, Height: 800}}
	p.Set(cfg)
	area, ok := p.WorkArea()
	assert.True(t, ok)
	assert.Equal(t, launcher.Rect{Width: 1000, Height: 800}, area)

	p.Set(nil)
	_, ok = p.WorkArea()
	assert.False(t, ok)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yml")
	require.NoError(t, os.WriteFile(path, []byte("screen:\n  width: 800\n  height: 600\n"), 0o644))

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	p := New(cfg)

	w, err := NewWatcher(p, []string{path}, func() (*config.Config, error) {
		return config.LoadFrom(dir)
	}, 10*time.Millisecond, nil)
	require.NoError(t, err)

	reloaded := make(chan launcher.Rect, 1)
	w.OnReload = func(area launcher.Rect, ok bool) {
		select {
		case reloaded <- area:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("screen:\n  width: 1920\n  height: 1080\n"), 0o644))

	select {
	case area := <-reloaded:
		assert.Equal(t, 1920, area.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("work area was not reloaded")
	}
	area, ok := p.WorkArea()
	assert.True(t, ok)
	assert.Equal(t, 1080, area.Height)
}
