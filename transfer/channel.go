// Package transfer carries a single catalog item from a drag gesture in the
// sidebar to a drop on the workspace.
package transfer

import "github.com/grovetools/deck/catalog"

// State of a Channel.
type State int

const (
	Idle State = iota
	Armed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	default:
		return "unknown"
	}
}

// Channel holds at most one pending item. The zero value is Idle.
// Channel is a value; transitions return the next channel.
type Channel struct {
	pending *catalog.Item
}

// State reports whether a transfer is in progress.
func (c Channel) State() State {
	if c.pending == nil {
		return Idle
	}
	return Armed
}

// Pending returns the armed item, if any.
func (c Channel) Pending() (catalog.Item, bool) {
	if c.pending == nil {
		return catalog.Item{}, false
	}
	return *c.pending, true
}

// Begin arms the channel with item. A transfer already armed is replaced.
func (c Channel) Begin(item catalog.Item) Channel {
	return Channel{pending: &item}
}

// Drop ends the gesture. A drop on a valid target consumes and returns the
// pending item; an invalid target or an idle channel yields nothing. The
// channel is Idle afterwards in every case.
func (c Channel) Drop(valid bool) (Channel, catalog.Item, bool) {
	item, armed := c.Pending()
	if !armed || !valid {
		return Channel{}, catalog.Item{}, false
	}
	return Channel{}, item, true
}

// Cancel discards any pending transfer.
func (c Channel) Cancel() Channel {
	return Channel{}
}
