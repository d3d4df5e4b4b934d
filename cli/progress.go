package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/tui/theme"
)

// Progress states reported for each scheduled open.
const (
	StatusScheduled = "scheduled"
	StatusOpening   = "opening"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ProgressReporter prints the progress of a staggered launch, one line per
// status change.
type ProgressReporter struct {
	mu       sync.Mutex
	out      io.Writer
	order    []string
	statuses map[string]string
	start    time.Time
	now      func() time.Time
}

// NewProgressReporter creates a reporter writing to out.
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{
		out:      out,
		statuses: make(map[string]string),
		start:    time.Now(),
		now:      time.Now,
	}
}

// statusRank orders statuses; an open never moves back to an earlier one.
var statusRank = map[string]int{
	StatusScheduled: 0,
	StatusOpening:   1,
	StatusCompleted: 2,
	StatusFailed:    2,
}

// Update records the status of key and prints it. Updates that would move
// key back to an earlier status are ignored, so a late "scheduled" cannot
// undo an open that already finished.
func (p *ProgressReporter) Update(key, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev, ok := p.statuses[key]
	if !ok {
		p.order = append(p.order, key)
	} else if statusRank[status] < statusRank[prev] {
		return
	}
	p.statuses[key] = status
	p.render(key)
}

// Status returns the last status recorded for key.
func (p *ProgressReporter) Status(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statuses[key]
}

// Remaining counts keys that have not completed or failed.
func (p *ProgressReporter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.statuses {
		if s != StatusCompleted && s != StatusFailed {
			n++
		}
	}
	return n
}

func (p *ProgressReporter) render(key string) {
	t := theme.DefaultTheme
	status := p.statuses[key]

	symbol := t.Muted.Render("[.]")
	switch status {
	case StatusCompleted:
		symbol = t.Success.Render("[*]")
	case StatusFailed:
		symbol = t.Error.Render("[x]")
	case StatusOpening:
		symbol = t.Info.Render("[~]")
	}

	elapsed := p.now().Sub(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "%s %s: %s %s\n", symbol, key, status, t.Muted.Render("+"+elapsed.String()))
}

// Done prints a summary line.
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	failed := 0
	for _, s := range p.statuses {
		if s == StatusFailed {
			failed++
		}
	}
	elapsed := p.now().Sub(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "\nOpened %d of %d in %s\n", len(p.order)-failed, len(p.order), elapsed)
}

// ProgressHost wraps a window host and reports every Open on a
// ProgressReporter, keyed by url.
type ProgressHost struct {
	launcher.Host
	Reporter *ProgressReporter
}

// Open forwards to the wrapped host and records the outcome.
func (h ProgressHost) Open(url, name string, geometry *launcher.Rect) error {
	h.Reporter.Update(url, StatusOpening)
	if err := h.Host.Open(url, name, geometry); err != nil {
		h.Reporter.Update(url, StatusFailed)
		return err
	}
	h.Reporter.Update(url, StatusCompleted)
	return nil
}
