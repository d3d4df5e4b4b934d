package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/deck/tui/theme"
)

// PrettyLogger writes short styled status lines for people, alongside the
// structured logs.
type PrettyLogger struct {
	w io.Writer
	t *theme.Theme
}

// NewPrettyLogger returns a PrettyLogger writing to stderr.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{w: os.Stderr, t: theme.DefaultTheme}
}

// WithWriter redirects output to w.
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.w = w
	return p
}

func (p *PrettyLogger) mark(symbol string, style lipgloss.Style, message string) {
	fmt.Fprintln(p.w, style.Render(symbol+" "+message))
}

// Success prints a checked line.
func (p *PrettyLogger) Success(message string) {
	p.mark("✓", p.t.Success, message)
}

// Warn prints a warning line.
func (p *PrettyLogger) Warn(message string) {
	p.mark("⚠", p.t.Warning, message)
}

// Fail prints a failure line, with err appended when set.
func (p *PrettyLogger) Fail(message string, err error) {
	if err != nil {
		message += ": " + err.Error()
	}
	p.mark("✗", p.t.Error, message)
}

// Field prints "key: value".
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.w, "%s: %s\n", p.t.Muted.Render(key), p.t.Bold.Render(fmt.Sprint(value)))
}

// Path prints a labelled file path or URL.
func (p *PrettyLogger) Path(label, path string) {
	link := lipgloss.NewStyle().Foreground(p.t.Colors.Cyan).Italic(true)
	fmt.Fprintf(p.w, "%s: %s\n", p.t.Muted.Render(label), link.Render(path))
}
