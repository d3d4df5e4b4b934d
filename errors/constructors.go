package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// CatalogInvalid creates an invalid catalog error for the item at index.
func CatalogInvalid(index int, reason string) *Error {
	return New(ErrCodeCatalogInvalid, fmt.Sprintf("catalog entry %d: %s", index, reason)).
		WithDetail("index", index)
}

// ItemNotFound creates an error for an unknown catalog id
func ItemNotFound(id string) *Error {
	return New(ErrCodeItemNotFound, fmt.Sprintf("catalog item '%s' not found", id)).
		WithDetail("id", id)
}

// HostUnavailable creates an error for a window host that cannot be started
func HostUnavailable(host string, err error) *Error {
	return Wrap(err, ErrCodeHostUnavailable, fmt.Sprintf("window host '%s' is unavailable", host)).
		WithDetail("host", host)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *Error {
	deckErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		deckErr = deckErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return deckErr
}
