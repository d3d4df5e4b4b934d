package deckui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/ticker"
)

type pane int

const (
	paneCatalog pane = iota
	paneWorkspace
)

// launchPrompt is an open confirmation dialog.
type launchPrompt struct {
	engine.Proposal
}

// Model is the composer's bubbletea model. All state changes go through the
// controller; the model only keeps cursors and the last snapshot.
type Model struct {
	ctrl     *engine.Controller
	snap     engine.Snapshot
	quotes   []ticker.Quote
	keys     KeyMap
	help     help.Model
	filter   textinput.Model
	pane     pane
	cursor   int // catalog row on the visible page
	tile     int // workspace tile
	prompt   *launchPrompt
	status   string
	title    string
	width    int
	height   int
	quitting bool
}

// QuotesMsg carries a new ticker board.
type QuotesMsg []ticker.Quote

// StateMsg asks the model to re-read the controller, e.g. after another
// client changed the session.
type StateMsg struct{}

// Init is the first command that will be executed.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Snapshot returns the snapshot the model last rendered from.
func (m *Model) Snapshot() engine.Snapshot {
	return m.snap
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.cursor >= len(m.snap.Visible) {
		m.cursor = len(m.snap.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.tile >= len(m.snap.Workspace) {
		m.tile = len(m.snap.Workspace) - 1
	}
	if m.tile < 0 {
		m.tile = 0
	}
}

func (m *Model) dispatch(a engine.Action) {
	m.ctrl.Dispatch(a)
	m.refresh()
}

// selected returns the id under the cursor of the focused pane.
func (m *Model) selected() (string, bool) {
	if m.pane == paneWorkspace {
		if m.tile < len(m.snap.Workspace) {
			return m.snap.Workspace[m.tile].ID, true
		}
		return "", false
	}
	if m.cursor < len(m.snap.Visible) {
		return m.snap.Visible[m.cursor].ID, true
	}
	return "", false
}

func (m *Model) nextCategory() string {
	cats := m.snap.Categories
	if len(cats) == 0 {
		return m.snap.Category
	}
	for i, c := range cats {
		if c == m.snap.Category {
			return cats[(i+1)%len(cats)]
		}
	}
	return cats[0]
}
