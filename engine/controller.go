package engine

import (
	"io"
	"sync"

	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/launcher"
	"github.com/sirupsen/logrus"
)

// Controller serializes actions against one session and launches the
// workspace through a launcher.
type Controller struct {
	launcher *launcher.Launcher
	logger   *logrus.Entry

	mu     sync.Mutex
	state  State
	closed bool

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewController starts a session over store.
func NewController(store *catalog.Store, pageSize int, l *launcher.Launcher, logger *logrus.Entry) *Controller {
	if logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		logger = logrus.NewEntry(quiet)
	}
	return &Controller{
		launcher: l,
		logger:   logger,
		state:    NewState(store, pageSize),
		subs:     make(map[int]func(State)),
	}
}

// Dispatch applies a and returns the resulting state. Removing an item
// cancels its pending opens; clearing the workspace cancels all of them.
// Actions after Close are ignored.
func (c *Controller) Dispatch(a Action) State {
	c.mu.Lock()
	if c.closed {
		s := c.state
		c.mu.Unlock()
		return s
	}
	prev := c.state
	next := Reduce(prev, a)
	c.state = next

	if c.launcher != nil {
		switch a.Kind {
		case Remove:
			if n := c.launcher.Cancel(a.ID); n > 0 {
				c.logger.WithFields(logrus.Fields{"item": a.ID, "cancelled": n}).Debug("Cancelled opens of removed item")
			}
		case Clear:
			c.launcher.CancelAll()
		}
	}
	c.mu.Unlock()

	if next.Version != prev.Version {
		c.logger.WithFields(logrus.Fields{
			"action":  a.Kind,
			"version": next.Version,
		}).Debug("State changed")
		c.notify(next)
	}
	return next
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot renders the current state.
func (c *Controller) Snapshot() Snapshot {
	return c.State().Snapshot()
}

// Subscribe registers fn to run after every state change. The returned
// function unregisters it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) notify(s State) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, fn := range c.subs {
		fn(s)
	}
}

// Proposal is a launch awaiting confirmation. SetVersion is the workspace
// revision that Message describes.
type Proposal struct {
	Mode       launcher.Mode
	Message    string
	SetVersion uint64
}

// ProposeLaunch describes launching the workspace in mode. ok is false when
// the workspace is empty.
func (c *Controller) ProposeLaunch(mode launcher.Mode) (p Proposal, ok bool) {
	if c.launcher == nil {
		return Proposal{}, false
	}
	s := c.State()
	message := c.launcher.Prompt(mode, s.Set.Items())
	if message == "" {
		return Proposal{}, false
	}
	return Proposal{Mode: mode, Message: message, SetVersion: s.Set.Version()}, true
}

// PromptLaunch returns the confirmation text for launching the workspace in
// mode, or "" when the workspace is empty.
func (c *Controller) PromptLaunch(mode launcher.Mode) string {
	p, _ := c.ProposeLaunch(mode)
	return p.Message
}

// StartProposal schedules the workspace only if it is still the revision p
// was made for. current is false when the workspace changed since, and
// nothing is launched.
func (c *Controller) StartProposal(p Proposal) (batch *launcher.Batch, current bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.launcher == nil {
		return nil, true
	}
	if c.state.Set.Version() != p.SetVersion {
		return nil, false
	}
	return c.launcher.Start(p.Mode, c.state.Set.Items()), true
}

// StartLaunch schedules the workspace after the user confirmed.
func (c *Controller) StartLaunch(mode launcher.Mode) *launcher.Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.launcher == nil {
		return nil
	}
	return c.launcher.Start(mode, c.state.Set.Items())
}

// Launch confirms through the host and schedules the workspace.
func (c *Controller) Launch(mode launcher.Mode) *launcher.Batch {
	c.mu.Lock()
	closed := c.closed
	items := c.state.Set.Items()
	c.mu.Unlock()
	if closed || c.launcher == nil {
		return nil
	}
	return c.launcher.Launch(mode, items)
}

// Close ends the session and cancels every pending open.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.launcher != nil {
		c.launcher.CancelAll()
	}
}
