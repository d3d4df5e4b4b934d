package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/deck/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message and hint for err based on its code and returns
// err unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}

	var deckErr *errors.Error
	stderrors.As(err, &deckErr)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ Configuration file '%v' not found.\n", deckErr.Details["path"])
		fmt.Fprintf(out, "Omit --config to use deck.yml from the current directory or its parents.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(out, "❌ %s\n", deckErr.Message)
		fmt.Fprintf(out, "Run 'deck config schema' to see the accepted keys.\n")

	case errors.ErrCodeCatalogInvalid:
		fmt.Fprintf(out, "❌ %s\n", deckErr.Message)
		fmt.Fprintf(out, "Every catalog entry needs a unique id, a name, a url and a category.\n")

	case errors.ErrCodeItemNotFound:
		fmt.Fprintf(out, "❌ Catalog item '%v' not found\n", deckErr.Details["id"])
		fmt.Fprintf(out, "Run 'deck catalog' to see available items.\n")

	case errors.ErrCodeHostUnavailable:
		fmt.Fprintf(out, "❌ Window host '%v' could not be started\n", deckErr.Details["host"])
		fmt.Fprintf(out, "Set launch.popup_backend to 'system' to use the default browser instead.\n")

	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	if h.Verbose && deckErr != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", deckErr.ToJSON())
	}
	return err
}
