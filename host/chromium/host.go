// Package chromium places popup windows with a Chromium instance driven by
// playwright, one browser window per window name.
package chromium

import (
	"fmt"
	"io"
	"sync"

	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/launcher"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Window is one open browser window.
type Window interface {
	Goto(url string) error
	Close() error
}

// Confirmer answers launch confirmations on behalf of the host.
type Confirmer interface {
	Confirm(message string) bool
}

// Host is a launcher.Host that honors window geometry. Opening a name that
// is already open replaces that window.
type Host struct {
	confirm Confirmer
	logger  *logrus.Entry

	mu      sync.Mutex
	launch  func(args []string) (Window, error)
	stop    func() error
	windows map[string]Window
	tabs    int
	closed  bool
}

// New returns a host that starts playwright on first use. Confirmations are
// delegated to confirm.
func New(confirm Confirmer, logger *logrus.Entry) *Host {
	h := &Host{
		confirm: confirm,
		logger:  logger,
		windows: make(map[string]Window),
	}
	h.launch = h.launchPlaywright
	return h
}

// NewWithLauncher returns a host that creates windows with launch.
func NewWithLauncher(confirm Confirmer, logger *logrus.Entry, launch func(args []string) (Window, error)) *Host {
	h := New(confirm, logger)
	h.launch = launch
	return h
}

// Args returns the Chromium flags that place a window at geometry.
func Args(geometry *launcher.Rect) []string {
	if geometry == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("--window-position=%d,%d", geometry.X, geometry.Y),
		fmt.Sprintf("--window-size=%d,%d", geometry.Width, geometry.Height),
	}
}

// Open implements launcher.Host. The lock is not held while Chromium starts,
// so a slow launch does not block Len or Close.
func (h *Host) Open(url, name string, geometry *launcher.Rect) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return errors.HostUnavailable("chromium", fmt.Errorf("host is closed"))
	}
	if name != launcher.TabTarget {
		if old, ok := h.windows[name]; ok {
			_ = old.Close()
			delete(h.windows, name)
		}
	}
	h.mu.Unlock()

	win, err := h.launch(Args(geometry))
	if err != nil {
		return errors.HostUnavailable("chromium", err)
	}
	if err := win.Goto(url); err != nil {
		_ = win.Close()
		return errors.HostUnavailable("chromium", err).WithDetail("url", url)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		_ = win.Close()
		return errors.HostUnavailable("chromium", fmt.Errorf("host closed during launch"))
	}
	key := name
	if name == launcher.TabTarget {
		h.tabs++
		key = fmt.Sprintf("%s#%d", name, h.tabs)
	} else if old, ok := h.windows[name]; ok {
		_ = old.Close()
	}
	h.windows[key] = win
	if h.logger != nil {
		h.logger.WithFields(logrus.Fields{"url": url, "name": name}).Debug("Opened chromium window")
	}
	return nil
}

// Confirm implements launcher.Host.
func (h *Host) Confirm(message string) bool {
	if h.confirm == nil {
		return false
	}
	return h.confirm.Confirm(message)
}

// Len is the number of open windows.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.windows)
}

// Close shuts every window and stops playwright.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for name, win := range h.windows {
		_ = win.Close()
		delete(h.windows, name)
	}
	if h.stop != nil {
		err := h.stop()
		h.stop = nil
		return err
	}
	return nil
}

type pwWindow struct {
	browser playwright.Browser
	page    playwright.Page
}

func (w *pwWindow) Goto(url string) error {
	_, err := w.page.Goto(url)
	return err
}

func (w *pwWindow) Close() error {
	return w.browser.Close()
}

// launchPlaywright starts a headed Chromium process per window; position and
// size flags apply per process.
func (h *Host) launchPlaywright(args []string) (Window, error) {
	pw, err := h.playwright()
	if err != nil {
		return nil, err
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
		Args:     args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}
	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		NoViewport: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &pwWindow{browser: browser, page: page}, nil
}

var (
	pwOnce sync.Once
	pwInst *playwright.Playwright
	pwErr  error
)

// playwright installs the driver and browsers once per process.
func (h *Host) playwright() (*playwright.Playwright, error) {
	pwOnce.Do(func() {
		opts := &playwright.RunOptions{
			Browsers: []string{"chromium"},
			Verbose:  false,
			Stdout:   io.Discard,
			Stderr:   io.Discard,
		}
		if err := playwright.Install(opts); err != nil {
			pwErr = fmt.Errorf("failed to install playwright: %w", err)
			return
		}
		pwInst, pwErr = playwright.Run(opts)
		if pwErr != nil {
			pwErr = fmt.Errorf("failed to start playwright: %w", pwErr)
		}
	})
	if pwErr == nil {
		h.mu.Lock()
		if h.stop == nil && !h.closed {
			h.stop = pwInst.Stop
		}
		h.mu.Unlock()
	}
	return pwInst, pwErr
}
