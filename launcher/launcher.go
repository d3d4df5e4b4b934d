// Package launcher opens workspace items as browser tabs or tiled popup
// windows, staggering the opens so popup blockers let them through.
package launcher

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grovetools/deck/catalog"
	"github.com/sirupsen/logrus"
)

// DefaultStagger is the delay between consecutive opens of one launch.
const DefaultStagger = 300 * time.Millisecond

// TabTarget is the window name used for tabs; hosts treat it as "new unnamed".
const TabTarget = "_blank"

// Single-window size used by OpenWindow.
const (
	SingleWindowWidth  = 1000
	SingleWindowHeight = 800
)

// Mode selects how a launch opens its items.
type Mode string

const (
	ModeTabs   Mode = "tabs"
	ModePopups Mode = "popups"
)

// ParseMode accepts "tabs" or "popups".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTabs, ModePopups:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown launch mode %q (want tabs or popups)", s)
}

// Open is one scheduled window open.
type Open struct {
	Index    int           `json:"index"`
	Item     catalog.Item  `json:"item"`
	Name     string        `json:"name"`
	Geometry *Rect         `json:"geometry,omitempty"`
	Delay    time.Duration `json:"delay"`
}

// Batch describes the opens of one launch.
type Batch struct {
	Mode  Mode   `json:"mode"`
	Token string `json:"token,omitempty"`
	Opens []Open `json:"opens"`
}

// Len is the number of opens in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Opens)
}

type pending struct {
	itemID string
	timer  Timer
}

// Launcher schedules window opens on a Host.
type Launcher struct {
	host     Host
	area     WorkAreaProvider
	sched    Scheduler
	stagger  time.Duration
	newToken func() string
	logger   *logrus.Entry

	mu      sync.Mutex
	seq     uint64
	pending map[uint64]pending

	// opening serializes host opens. An open stays pending until it holds
	// opening, so a slow host cannot hide queued opens from Cancel.
	opening sync.Mutex
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithWorkArea sets the provider used to tile popups.
func WithWorkArea(p WorkAreaProvider) Option {
	return func(l *Launcher) {
		if p != nil {
			l.area = p
		}
	}
}

// WithScheduler replaces the timer-based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(l *Launcher) {
		if s != nil {
			l.sched = s
		}
	}
}

// WithStagger sets the delay between opens. Non-positive values keep the default.
func WithStagger(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.stagger = d
		}
	}
}

// WithLogger sets the logger used for host failures.
func WithLogger(entry *logrus.Entry) Option {
	return func(l *Launcher) { l.logger = entry }
}

// WithTokenSource replaces the uuid generator for popup handles.
func WithTokenSource(fn func() string) Option {
	return func(l *Launcher) { l.newToken = fn }
}

// New creates a launcher opening windows on host.
func New(host Host, opts ...Option) *Launcher {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	l := &Launcher{
		host:     host,
		area:     StaticWorkArea{},
		sched:    TimerScheduler{},
		stagger:  DefaultStagger,
		newToken: uuid.NewString,
		logger:   logrus.NewEntry(quiet),
		pending:  make(map[uint64]pending),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prompt returns the confirmation text for launching items in mode, or ""
// when there is nothing to launch.
func (l *Launcher) Prompt(mode Mode, items []catalog.Item) string {
	n := len(items)
	if n == 0 {
		return ""
	}
	switch mode {
	case ModePopups:
		return fmt.Sprintf("Attempting to open %d popup windows arranged side-by-side.", n)
	default:
		return fmt.Sprintf("Attempting to open %d new tabs. Please ensure pop-ups are enabled for this site.", n)
	}
}

// Plan computes the opens for a launch without scheduling anything.
func (l *Launcher) Plan(mode Mode, items []catalog.Item) *Batch {
	batch := &Batch{Mode: mode}
	if len(items) == 0 {
		return batch
	}

	var tiles []Rect
	if mode == ModePopups {
		batch.Token = l.newToken()
		if area, ok := l.area.WorkArea(); ok {
			tiles = Tile(len(items), area)
		}
	}

	batch.Opens = make([]Open, len(items))
	for i, item := range items {
		op := Open{
			Index: i,
			Item:  item,
			Name:  TabTarget,
			Delay: time.Duration(i) * l.stagger,
		}
		if mode == ModePopups {
			op.Name = fmt.Sprintf("popup_%s_%s", item.ID, batch.Token)
			if tiles != nil {
				geo := tiles[i]
				op.Geometry = &geo
			}
		}
		batch.Opens[i] = op
	}
	return batch
}

// Start schedules a launch whose confirmation was already obtained.
func (l *Launcher) Start(mode Mode, items []catalog.Item) *Batch {
	batch := l.Plan(mode, items)
	if batch.Len() == 0 {
		return batch
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, op := range batch.Opens {
		l.seq++
		key := l.seq
		op := op
		timer := l.sched.Schedule(op.Delay, func() { l.fire(key, op) })
		l.pending[key] = pending{itemID: op.Item.ID, timer: timer}
	}
	l.logger.WithFields(logrus.Fields{
		"mode":  mode,
		"count": batch.Len(),
	}).Info("Launch scheduled")
	return batch
}

// Launch asks the host to confirm and starts the launch when approved. It
// returns nil when nothing was started.
func (l *Launcher) Launch(mode Mode, items []catalog.Item) *Batch {
	msg := l.Prompt(mode, items)
	if msg == "" {
		return nil
	}
	if !l.host.Confirm(msg) {
		l.logger.WithField("mode", mode).Debug("Launch declined")
		return nil
	}
	return l.Start(mode, items)
}

func (l *Launcher) fire(key uint64, op Open) {
	l.opening.Lock()
	defer l.opening.Unlock()

	l.mu.Lock()
	if _, ok := l.pending[key]; !ok {
		l.mu.Unlock()
		return
	}
	delete(l.pending, key)
	l.mu.Unlock()

	if err := l.host.Open(op.Item.URL, op.Name, op.Geometry); err != nil {
		l.logger.WithError(err).WithField("item", op.Item.ID).Debug("Host did not open window")
	}
}

// Cancel stops the pending opens of one item and returns how many were stopped.
func (l *Launcher) Cancel(itemID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, p := range l.pending {
		if p.itemID != itemID {
			continue
		}
		p.timer.Stop()
		delete(l.pending, key)
		n++
	}
	return n
}

// CancelAll stops every pending open and returns how many were stopped.
func (l *Launcher) CancelAll() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.pending)
	for key, p := range l.pending {
		p.timer.Stop()
		delete(l.pending, key)
	}
	if n > 0 {
		l.logger.WithField("count", n).Debug("Pending opens cancelled")
	}
	return n
}

// Pending is the number of scheduled opens that have not run yet.
func (l *Launcher) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// OpenTab opens one item in a new tab immediately.
func (l *Launcher) OpenTab(item catalog.Item) error {
	return l.host.Open(item.URL, TabTarget, nil)
}

// OpenWindow opens one item in a single window, centered on the work area
// when it is known.
func (l *Launcher) OpenWindow(item catalog.Item) error {
	geo := Rect{Width: SingleWindowWidth, Height: SingleWindowHeight}
	if area, ok := l.area.WorkArea(); ok {
		geo = Center(area, SingleWindowWidth, SingleWindowHeight)
	}
	return l.host.Open(item.URL, "llm_"+item.ID, &geo)
}
