// Package workarea reports the display area used to tile popups. The area
// comes from deck.yml and follows edits to the file while deck runs.
package workarea

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/launcher"
	"github.com/sirupsen/logrus"
)

// Provider is a launcher.WorkAreaProvider backed by the screen section of
// the configuration.
type Provider struct {
	mu   sync.RWMutex
	area launcher.Rect
}

// New returns a provider seeded from cfg.
func New(cfg *config.Config) *Provider {
	p := &Provider{}
	p.Set(cfg)
	return p
}

// Set replaces the area with cfg's screen dimensions.
func (p *Provider) Set(cfg *config.Config) {
	var area launcher.Rect
	if cfg != nil {
		area = launcher.Rect{Width: cfg.Screen.Width, Height: cfg.Screen.Height}
	}
	p.mu.Lock()
	p.area = area
	p.mu.Unlock()
}

// WorkArea implements launcher.WorkAreaProvider. Missing or zero dimensions
// report unavailable.
func (p *Provider) WorkArea() (launcher.Rect, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.area, !p.area.Empty()
}

// Watcher reloads a Provider when any of its config files change.
type Watcher struct {
	provider *Provider
	watcher  *fsnotify.Watcher
	files    map[string]bool
	reload   func() (*config.Config, error)
	debounce time.Duration
	logger   *logrus.Entry

	mu         sync.Mutex
	lastChange time.Time

	// OnReload runs after a successful reload.
	OnReload func(area launcher.Rect, ok bool)
}

// NewWatcher watches the directories holding files. fsnotify does not follow
// renames of a watched file, so the parent directories are watched and
// events are filtered by name.
func NewWatcher(p *Provider, files []string, reload func() (*config.Config, error), debounce time.Duration, logger *logrus.Entry) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		provider: p,
		watcher:  fw,
		files:    make(map[string]bool),
		reload:   reload,
		debounce: debounce,
		logger:   logger,
	}
	if w.debounce <= 0 {
		w.debounce = config.DefaultWatchDebounceMs * time.Millisecond
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			if w.logger != nil {
				w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			}
			w.handleChange(abs)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Errorf("Watcher error: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleChange reloads the configuration unless a reload just happened.
func (w *Watcher) handleChange(file string) {
	w.mu.Lock()
	elapsed := time.Since(w.lastChange)
	if elapsed < w.debounce {
		w.mu.Unlock()
		if w.logger != nil {
			w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(file), elapsed)
		}
		return
	}
	w.lastChange = time.Now()
	w.mu.Unlock()

	// Give editors that write in several steps a moment to finish.
	time.Sleep(w.debounce)

	cfg, err := w.reload()
	if err != nil {
		if w.logger != nil {
			w.logger.WithError(err).Warn("Config reload failed, keeping previous work area")
		}
		return
	}
	w.provider.Set(cfg)
	area, ok := w.provider.WorkArea()
	if w.logger != nil {
		w.logger.WithFields(logrus.Fields{
			"file":   filepath.Base(file),
			"width":  area.Width,
			"height": area.Height,
		}).Info("Work area reloaded")
	}
	if w.OnReload != nil {
		w.OnReload(area, ok)
	}
}
