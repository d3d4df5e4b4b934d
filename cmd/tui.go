package cmd

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/deck/logging"
	"github.com/grovetools/deck/ticker"
	"github.com/grovetools/deck/tui"
	"github.com/grovetools/deck/tui/deckui"
	"github.com/grovetools/deck/version"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal composer",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := tui.RequireTerminal(); err != nil {
		return err
	}
	s, err := newSession(cmd, "tui", sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	// Structured stderr output would tear the alt screen.
	defer logging.SetGlobalOutput(io.Discard)()

	tui.InitializeTUI()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := []deckui.Option{deckui.WithTitle("DECK " + version.GetInfo().Short())}
	model := deckui.New(s.ctrl, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if feed := s.feed(func(q []ticker.Quote) { p.Send(deckui.QuotesMsg(q)) }); feed != nil {
		go feed.Run(ctx)
	}
	s.watchScreen(ctx, cmd)

	_, err = p.Run()
	return err
}
