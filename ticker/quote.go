// Package ticker keeps the latest market quotes for the status line.
package ticker

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
)

// DefaultSymbols are the symbols shown when none are configured.
var DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA"}

// Quote is one symbol's latest price.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
}

// IsUp reports whether the quote did not fall.
func (q Quote) IsUp() bool {
	return q.Change >= 0
}

// String formats the quote as "AAPL 187.30 ▲ +1.20 (+0.65%)".
func (q Quote) String() string {
	arrow := "▼"
	if q.IsUp() {
		arrow = "▲"
	}
	return fmt.Sprintf("%s %.2f %s %+.2f (%+.2f%%)", q.Symbol, q.Price, arrow, q.Change, q.PercentChange)
}

// Source delivers a batch of quotes.
type Source interface {
	Fetch(ctx context.Context) ([]Quote, error)
}

// Board holds the current quote list. Readers always see a complete list.
type Board struct {
	quotes atomic.Pointer[[]Quote]
}

// Replace swaps in quotes. An empty delivery keeps the previous list and
// Replace reports false.
func (b *Board) Replace(quotes []Quote) bool {
	if len(quotes) == 0 {
		return false
	}
	cp := make([]Quote, len(quotes))
	copy(cp, quotes)
	b.quotes.Store(&cp)
	return true
}

// Quotes returns the current list, or nil before the first delivery.
func (b *Board) Quotes() []Quote {
	p := b.quotes.Load()
	if p == nil {
		return nil
	}
	return *p
}

// MockSource fabricates quotes for Symbols. Prices fall in [100, 600) and
// changes in [-5, 5).
type MockSource struct {
	Symbols []string
	Rand    *rand.Rand
}

// Fetch implements Source.
func (m *MockSource) Fetch(ctx context.Context) ([]Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbols := m.Symbols
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	quotes := make([]Quote, len(symbols))
	for i, sym := range symbols {
		price := 100 + m.float()*500
		change := m.float()*10 - 5
		quotes[i] = Quote{
			Symbol:        sym,
			Price:         price,
			Change:        change,
			PercentChange: change / price * 100,
		}
	}
	return quotes, nil
}

func (m *MockSource) float() float64 {
	if m.Rand != nil {
		return m.Rand.Float64()
	}
	return rand.Float64()
}
