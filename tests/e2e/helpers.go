package main

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// findDeckBinary finds the deck binary under test.
// The binary is expected on PATH, typically ./bin after a local build.
func findDeckBinary() (string, error) {
	path, err := exec.LookPath("deck")
	if err != nil {
		return "", fmt.Errorf("could not find 'deck' binary in PATH. Build it into ./bin and add that to PATH")
	}
	return path, nil
}

// writeProjectConfig creates a project directory holding a deck.yml with the given body.
func writeProjectConfig(ctx *harness.Context, name, body string) (string, error) {
	dir := ctx.NewDir(name)
	if err := fs.WriteString(filepath.Join(dir, "deck.yml"), body); err != nil {
		return "", err
	}
	return dir, nil
}

// runDeck runs the deck binary with args inside dir and shows its output.
func runDeck(ctx *harness.Context, dir string, args ...string) (stdout, stderr string, exitCode int, err error) {
	bin, err := findDeckBinary()
	if err != nil {
		return "", "", 0, err
	}
	cmd := ctx.Command(bin, args...).Dir(dir)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return result.Stdout, result.Stderr, result.ExitCode, nil
}
