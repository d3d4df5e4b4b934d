// Package deckui is the terminal composer: a paged, filterable catalog on
// the left, the workspace grid on the right, and a quote ticker underneath.
package deckui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/ticker"
)

// Option configures a Model.
type Option func(*Model)

// WithQuotes seeds the ticker line.
func WithQuotes(quotes []ticker.Quote) Option {
	return func(m *Model) { m.quotes = quotes }
}

// WithTitle sets the header text.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// New creates a composer over ctrl.
func New(ctrl *engine.Controller, opts ...Option) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	m := &Model{
		ctrl:   ctrl,
		keys:   DefaultKeyMap,
		help:   help.New(),
		filter: filter,
		title:  "DECK",
		width:  100,
		height: 30,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

// Subscribe forwards controller changes to p as StateMsg and returns the
// unsubscribe function.
func Subscribe(p *tea.Program, ctrl *engine.Controller) func() {
	return ctrl.Subscribe(func(engine.State) {
		go p.Send(StateMsg{})
	})
}
