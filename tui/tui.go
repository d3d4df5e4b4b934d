// Package tui holds terminal setup shared by deck's interactive views.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/grovetools/deck/errors"
)

// InitializeTUI forces a truecolor profile when CLICOLOR_FORCE=1 or
// COLORTERM=truecolor, so captured sessions keep their styling.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// RequireTerminal fails when stdin or stdout is not attached to a terminal.
func RequireTerminal() error {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"the deck TUI needs an interactive terminal; use 'deck serve' or 'deck open' instead")
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
