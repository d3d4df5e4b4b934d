package ticker

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardReplace(t *testing.T) {
	var b Board
	assert.Nil(t, b.Quotes())

	first := []Quote{{Symbol: "AAPL", Price: 180}}
	assert.True(t, b.Replace(first))
	first[0].Price = 0
	assert.Equal(t, 180.0, b.Quotes()[0].Price, "board keeps its own copy")

	assert.False(t, b.Replace(nil))
	assert.Equal(t, "AAPL", b.Quotes()[0].Symbol, "empty delivery keeps the previous list")

	assert.True(t, b.Replace([]Quote{{Symbol: "MSFT"}, {Symbol: "NVDA"}}))
	assert.Len(t, b.Quotes(), 2)
}

func TestQuoteFormatting(t *testing.T) {
	up := Quote{Symbol: "AAPL", Price: 187.3, Change: 1.2, PercentChange: 0.65}
	assert.True(t, up.IsUp())
	assert.Equal(t, "AAPL 187.30 ▲ +1.20 (+0.65%)", up.String())

	down := Quote{Symbol: "TSLA", Price: 200, Change: -2.5, PercentChange: -1.25}
	assert.False(t, down.IsUp())
	assert.Equal(t, "TSLA 200.00 ▼ -2.50 (-1.25%)", down.String())
}

func TestMockSourceRanges(t *testing.T) {
	src := &MockSource{Symbols: []string{"A", "B", "C"}, Rand: rand.New(rand.NewSource(7))}
	for i := 0; i < 50; i++ {
		quotes, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, quotes, 3)
		for _, q := range quotes {
			assert.GreaterOrEqual(t, q.Price, 100.0)
			assert.Less(t, q.Price, 600.0)
			assert.GreaterOrEqual(t, q.Change, -5.0)
			assert.Less(t, q.Change, 5.0)
		}
	}

	quotes, err := (&MockSource{}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, quotes, len(DefaultSymbols))
}

type scriptedSource struct {
	mu         sync.Mutex
	deliveries [][]Quote
	calls      int
}

func (s *scriptedSource) Fetch(ctx context.Context) ([]Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.deliveries) == 0 {
		return nil, errors.New("exhausted")
	}
	d := s.deliveries[0]
	s.deliveries = s.deliveries[1:]
	return d, nil
}

func TestFeedRun(t *testing.T) {
	src := &scriptedSource{deliveries: [][]Quote{
		{{Symbol: "AAPL"}},
		{},
		{{Symbol: "MSFT"}},
	}}
	board := &Board{}
	updates := make(chan []Quote, 10)
	feed := &Feed{
		Source:   src,
		Board:    board,
		Interval: time.Millisecond,
		OnUpdate: func(q []Quote) { updates <- q },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	first := <-updates
	assert.Equal(t, "AAPL", first[0].Symbol)
	second := <-updates
	assert.Equal(t, "MSFT", second[0].Symbol, "empty delivery produced no update")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, "MSFT", board.Quotes()[0].Symbol)
}
