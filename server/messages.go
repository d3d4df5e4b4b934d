package server

import (
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/ticker"
)

// Message types.
const (
	TypeSnapshot      = "snapshot"
	TypeConfirm       = "confirm"
	TypeError         = "error"
	TypeAction        = "action"
	TypeLaunch        = "launch"
	TypeConfirmLaunch = "confirm_launch"
)

// Outgoing is a server to client message. Snapshot fields are inlined for
// snapshot messages.
type Outgoing struct {
	Type string `json:"type"`
	*engine.Snapshot
	Quotes  []ticker.Quote `json:"quotes,omitempty"`
	Mode    string         `json:"mode,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Incoming is a client to server message. Action fields are inlined for
// action messages.
type Incoming struct {
	Type string `json:"type"`
	engine.Action
	Mode   string `json:"mode,omitempty"`
	Accept bool   `json:"accept,omitempty"`
}

func errorMessage(text string) Outgoing {
	return Outgoing{Type: TypeError, Message: text}
}
