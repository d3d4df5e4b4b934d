package ticker

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is how often a Feed polls its source.
const DefaultInterval = 100 * time.Second

// Feed polls a Source and publishes deliveries on a Board.
type Feed struct {
	Source   Source
	Board    *Board
	Interval time.Duration
	Logger   *logrus.Entry
	// OnUpdate runs after each delivery that replaced the board.
	OnUpdate func([]Quote)
}

// Run polls immediately and then every Interval until ctx is done.
func (f *Feed) Run(ctx context.Context) error {
	interval := f.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := f.Logger
	if logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		logger = logrus.NewEntry(quiet)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		f.poll(ctx, logger)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (f *Feed) poll(ctx context.Context, logger *logrus.Entry) {
	quotes, err := f.Source.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.WithError(err).Warn("Quote fetch failed")
		}
		return
	}
	if !f.Board.Replace(quotes) {
		logger.Debug("Empty quote delivery, keeping previous board")
		return
	}
	logger.WithField("count", len(quotes)).Debug("Quote board updated")
	if f.OnUpdate != nil {
		f.OnUpdate(f.Board.Quotes())
	}
}
