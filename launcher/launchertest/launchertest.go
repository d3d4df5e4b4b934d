// Package launchertest provides a manual scheduler and a recording host for
// tests that drive the launcher.
package launchertest

import (
	"sort"
	"sync"
	"time"

	"github.com/grovetools/deck/launcher"
)

// Scheduler is a launcher.Scheduler driven by Advance instead of wall time.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

type timer struct {
	at      time.Duration
	seq     int
	fn      func()
	done    bool
	stopped bool
	mu      *sync.Mutex
}

func (t *timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Schedule implements launcher.Scheduler.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) launcher.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &timer{at: s.now + delay, seq: len(s.timers), fn: fn, mu: &s.mu}
	s.timers = append(s.timers, t)
	return t
}

// Now is the current virtual time.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves virtual time forward by d, running due actions in time order.
// Each action observes Now as its own due time.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *timer
		due := make([]*timer, 0, len(s.timers))
		for _, t := range s.timers {
			if !t.done && !t.stopped && t.at <= target {
				due = append(due, t)
			}
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at != due[j].at {
				return due[i].at < due[j].at
			}
			return due[i].seq < due[j].seq
		})
		if len(due) > 0 {
			next = due[0]
			next.done = true
			s.now = next.at
		} else {
			s.now = target
		}
		s.mu.Unlock()

		if next == nil {
			return
		}
		next.fn()
	}
}

// Scheduled is the number of actions that have neither run nor been stopped.
func (s *Scheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.done && !t.stopped {
			n++
		}
	}
	return n
}

// Opened is one recorded Host.Open call.
type Opened struct {
	URL      string
	Name     string
	Geometry *launcher.Rect
	At       time.Duration
}

// Host records opens and answers confirmations with Answer.
type Host struct {
	Answer bool
	Clock  func() time.Duration
	Err    error

	mu      sync.Mutex
	opened  []Opened
	prompts []string
}

// Open implements launcher.Host.
func (h *Host) Open(url, name string, geometry *launcher.Rect) error {
	var at time.Duration
	if h.Clock != nil {
		at = h.Clock()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, Opened{URL: url, Name: name, Geometry: geometry, At: at})
	return h.Err
}

// Confirm implements launcher.Host.
func (h *Host) Confirm(message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompts = append(h.prompts, message)
	return h.Answer
}

// Opened returns the recorded opens in call order.
func (h *Host) Opened() []Opened {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Opened, len(h.opened))
	copy(out, h.opened)
	return out
}

// Prompts returns the confirmation messages shown so far.
func (h *Host) Prompts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.prompts))
	copy(out, h.prompts)
	return out
}

// New returns a scheduler and a host whose clock follows it.
func New(answer bool) (*Scheduler, *Host) {
	s := &Scheduler{}
	return s, &Host{Answer: answer, Clock: s.Now}
}
