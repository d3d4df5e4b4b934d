package deckui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/launcher"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case QuotesMsg:
		m.quotes = msg
		return m, nil

	case StateMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		p := m.prompt.Proposal
		m.prompt = nil
		batch, current := m.ctrl.StartProposal(p)
		if !current {
			m.ask(p.Mode)
			return m, nil
		}
		m.status = fmt.Sprintf("Opening %d %s", batch.Len(), p.Mode)
	case key.Matches(msg, m.keys.Decline):
		m.prompt = nil
		m.status = "Launch cancelled"
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.snap.Query {
		m.dispatch(engine.Action{Kind: engine.SetQuery, Value: m.filter.Value()})
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll && !key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = false
		return m, nil
	}

	// A pending drag claims enter and esc.
	if m.snap.Armed != "" {
		switch {
		case key.Matches(msg, m.keys.Drop):
			m.dispatch(engine.Action{Kind: engine.Drop, Valid: true})
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			m.dispatch(engine.Action{Kind: engine.CancelDrag})
			m.status = "Drag cancelled"
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Search):
		m.pane = paneCatalog
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.SwitchPane):
		if m.pane == paneCatalog && len(m.snap.Workspace) > 0 {
			m.pane = paneWorkspace
		} else {
			m.pane = paneCatalog
		}

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.PrevPage):
		m.dispatch(engine.Action{Kind: engine.PrevPage})
		m.cursor = 0

	case key.Matches(msg, m.keys.NextPage):
		m.dispatch(engine.Action{Kind: engine.NextPage})
		m.cursor = 0

	case key.Matches(msg, m.keys.Category):
		m.dispatch(engine.Action{Kind: engine.SetCategory, Value: m.nextCategory()})
		m.cursor = 0

	case key.Matches(msg, m.keys.Grab):
		if id, ok := m.selected(); ok && m.pane == paneCatalog {
			m.dispatch(engine.Action{Kind: engine.BeginDrag, ID: id})
			m.status = "Press enter to drop on the workspace, esc to cancel"
		}

	case key.Matches(msg, m.keys.Add):
		if id, ok := m.selected(); ok && m.pane == paneCatalog {
			m.dispatch(engine.Action{Kind: engine.Add, ID: id})
		}

	case key.Matches(msg, m.keys.Remove):
		if id, ok := m.selected(); ok && m.pane == paneWorkspace {
			m.dispatch(engine.Action{Kind: engine.Remove, ID: id})
			if len(m.snap.Workspace) == 0 {
				m.pane = paneCatalog
			}
		}

	case key.Matches(msg, m.keys.Clear):
		m.dispatch(engine.Action{Kind: engine.Clear})
		m.pane = paneCatalog
		m.status = "Workspace cleared"

	case key.Matches(msg, m.keys.OpenTabs):
		m.ask(launcher.ModeTabs)

	case key.Matches(msg, m.keys.OpenPopups):
		m.ask(launcher.ModePopups)
	}

	return m, nil
}

func (m *Model) move(delta int) {
	if m.pane == paneWorkspace {
		m.tile += delta
	} else {
		m.cursor += delta
	}
	m.refresh()
}

func (m *Model) ask(mode launcher.Mode) {
	p, ok := m.ctrl.ProposeLaunch(mode)
	if !ok {
		m.status = "Workspace is empty"
		return
	}
	m.prompt = &launchPrompt{Proposal: p}
}
