// Package engine holds the session state of the composer and the pure
// transitions between states. Presentation layers (the terminal UI and the
// websocket server) feed it actions and render its snapshots.
package engine

import (
	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/transfer"
	"github.com/grovetools/deck/workspace"
)

// Kind names an action.
type Kind string

const (
	SetCategory Kind = "set_category"
	SetQuery    Kind = "set_query"
	NextPage    Kind = "next_page"
	PrevPage    Kind = "prev_page"
	BeginDrag   Kind = "begin_drag"
	Drop        Kind = "drop"
	CancelDrag  Kind = "cancel_drag"
	Add         Kind = "add"
	Remove      Kind = "remove"
	Clear       Kind = "clear"
)

// Action is one user intent. ID names a catalog item, Value carries text for
// SetCategory and SetQuery, Valid marks whether a Drop landed on the workspace.
type Action struct {
	Kind  Kind   `json:"kind"`
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
	Valid bool   `json:"valid,omitempty"`
}

// State is one revision of the session. States are values; Reduce returns a
// new one and never mutates its input.
type State struct {
	Catalog  *catalog.Store
	View     catalog.View
	Set      workspace.Set
	Transfer transfer.Channel
	Version  uint64
}

// NewState starts a session over store with an empty workspace.
func NewState(store *catalog.Store, pageSize int) State {
	return State{
		Catalog: store,
		View:    catalog.NewView(pageSize),
	}
}

// Reduce applies action to s. Actions naming unknown items leave the state
// unchanged. Version increases only when something observable changed.
func Reduce(s State, a Action) State {
	next := s
	switch a.Kind {
	case SetCategory:
		next.View = s.View.WithCategory(a.Value)
	case SetQuery:
		next.View = s.View.WithQuery(a.Value)
	case NextPage:
		total := len(catalog.Filter(s.items(), s.View.Category, s.View.Query))
		next.View = s.View.NextPage(total)
	case PrevPage:
		next.View = s.View.PrevPage()
	case BeginDrag:
		item, ok := s.lookup(a.ID)
		if !ok {
			return s
		}
		next.Transfer = s.Transfer.Begin(item)
	case Drop:
		var item catalog.Item
		var ok bool
		next.Transfer, item, ok = s.Transfer.Drop(a.Valid)
		if ok {
			next.Set = s.Set.Add(item)
		}
	case CancelDrag:
		next.Transfer = s.Transfer.Cancel()
	case Add:
		item, ok := s.lookup(a.ID)
		if !ok {
			return s
		}
		next.Set = s.Set.Add(item)
	case Remove:
		next.Set = s.Set.Remove(a.ID)
	case Clear:
		next.Set = s.Set.Clear()
	default:
		return s
	}

	if next.changedFrom(s) {
		next.Version = s.Version + 1
	}
	return next
}

func (s State) changedFrom(prev State) bool {
	if s.View != prev.View || s.Set.Version() != prev.Set.Version() {
		return true
	}
	if s.Transfer.State() != prev.Transfer.State() {
		return true
	}
	a, _ := s.Transfer.Pending()
	b, _ := prev.Transfer.Pending()
	return a.ID != b.ID
}

func (s State) items() []catalog.Item {
	if s.Catalog == nil {
		return nil
	}
	return s.Catalog.Items()
}

func (s State) lookup(id string) (catalog.Item, bool) {
	if s.Catalog == nil {
		return catalog.Item{}, false
	}
	return s.Catalog.Lookup(id)
}

// Snapshot is a rendered, serializable picture of a State.
type Snapshot struct {
	Version    uint64          `json:"version"`
	Categories []string        `json:"categories"`
	Category   string          `json:"category"`
	Query      string          `json:"query"`
	Page       int             `json:"page"`
	Total      int             `json:"total"`
	First      int             `json:"first"`
	Last       int             `json:"last"`
	HasNext    bool            `json:"has_next"`
	HasPrev    bool            `json:"has_prev"`
	Visible    []catalog.Item  `json:"visible"`
	Workspace  []catalog.Item  `json:"workspace"`
	Grid       *workspace.Grid `json:"grid,omitempty"`
	Armed      string          `json:"armed,omitempty"`
}

// Snapshot renders s.
func (s State) Snapshot() Snapshot {
	res := s.View.Apply(s.items())
	first, last := s.View.Range(res.Total())
	snap := Snapshot{
		Version:   s.Version,
		Category:  s.View.Category,
		Query:     s.View.Query,
		Page:      res.Page,
		Total:     res.Total(),
		First:     first,
		Last:      last,
		HasNext:   res.HasNext,
		HasPrev:   res.HasPrev,
		Visible:   res.Visible,
		Workspace: s.Set.Items(),
	}
	if s.Catalog != nil {
		snap.Categories = s.Catalog.Categories()
	}
	if grid, ok := workspace.ResolveGrid(s.Set.Len()); ok {
		snap.Grid = &grid
	}
	if item, ok := s.Transfer.Pending(); ok {
		snap.Armed = item.ID
	}
	return snap
}
