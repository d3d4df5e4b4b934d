// Package system opens workspace items in the user's default browser.
package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/launcher"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Browser is a launcher.Host backed by the system browser. Window names and
// geometry are not honored: system browsers open every URL as a new tab or
// window of their own choosing.
type Browser struct {
	// AssumeYes approves every confirmation without asking.
	AssumeYes bool

	In     io.Reader
	Out    io.Writer
	Logger *logrus.Entry

	// Start runs a command without waiting for it. Defaults to exec.Command(...).Start.
	Start func(name string, args ...string) error
	// IsInteractive reports whether In is a terminal.
	IsInteractive func() bool
	// GOOS overrides runtime.GOOS.
	GOOS string
}

// New returns a Browser wired to the process's terminal.
func New(assumeYes bool, logger *logrus.Entry) *Browser {
	return &Browser{
		AssumeYes: assumeYes,
		In:        os.Stdin,
		Out:       os.Stderr,
		Logger:    logger,
	}
}

// Open implements launcher.Host.
func (b *Browser) Open(url, name string, geometry *launcher.Rect) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New(errors.ErrCodeInvalidInput, "empty URL")
	}
	name, args := b.command(url)
	if err := b.start(name, args...); err != nil {
		return errors.HostUnavailable("system browser", err).WithDetail("command", name)
	}
	if b.Logger != nil {
		b.Logger.WithFields(logrus.Fields{"url": url, "command": name}).Debug("Opened in system browser")
	}
	return nil
}

// command picks $BROWSER first, then the platform opener.
func (b *Browser) command(url string) (string, []string) {
	if env := strings.Fields(os.Getenv("BROWSER")); len(env) > 0 {
		return env[0], append(env[1:], url)
	}
	goos := b.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}

func (b *Browser) start(name string, args ...string) error {
	if b.Start != nil {
		return b.Start(name, args...)
	}
	return exec.Command(name, args...).Start()
}

// Confirm implements launcher.Host. It prompts "message [y/N]" and denies when
// the input is not a terminal, unless AssumeYes is set.
func (b *Browser) Confirm(message string) bool {
	if b.AssumeYes {
		return true
	}
	if !b.interactive() {
		if b.Logger != nil {
			b.Logger.Debug("Non-interactive input, launch not confirmed")
		}
		return false
	}

	out := b.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "%s [y/N] ", message)

	line, err := bufio.NewReader(b.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (b *Browser) interactive() bool {
	if b.IsInteractive != nil {
		return b.IsInteractive()
	}
	if f, ok := b.In.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
