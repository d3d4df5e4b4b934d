package main

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/harness"
)

// LayoutScenario checks the tile grid reported for a workspace size.
func LayoutScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "deck-layout",
		Description: "Reports the tile grid and popup geometry for a workspace size.",
		Tags:        []string{"deck", "launch"},
		Steps: []harness.Step{
			harness.NewStep("Compute layout for four items", func(ctx *harness.Context) error {
				stdout, stderr, code, err := runDeck(ctx, ctx.RootDir, "layout", "4", "--width", "1000", "--height", "800", "--json")
				if err != nil {
					return err
				}
				if code != 0 {
					return fmt.Errorf("deck layout failed with exit code %d: %s", code, stderr)
				}
				var report struct {
					Count  int               `json:"count"`
					Popups []json.RawMessage `json:"popups"`
				}
				if err := json.Unmarshal([]byte(stdout), &report); err != nil {
					return fmt.Errorf("failed to parse layout JSON: %w", err)
				}
				if err := assert.Equal(4, report.Count, "count should be echoed"); err != nil {
					return err
				}
				return assert.Equal(4, len(report.Popups), "one popup per item")
			}),
			harness.NewStep("Reject a zero count", func(ctx *harness.Context) error {
				_, _, code, err := runDeck(ctx, ctx.RootDir, "layout", "0")
				if err != nil {
					return err
				}
				return assert.Equal(1, code, "zero items should fail")
			}),
		},
	}
}

// OpenDryRunScenario plans a popup launch without opening windows.
func OpenDryRunScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "deck-open-dry-run",
		Description: "Prints the staggered popup plan for two items.",
		Tags:        []string{"deck", "launch"},
		Steps: []harness.Step{
			harness.NewStep("Plan popups", func(ctx *harness.Context) error {
				dir, err := writeProjectConfig(ctx, "dry-run-project", "screen:\n  width: 1000\n  height: 800\nlaunch:\n  stagger_ms: 250\n")
				if err != nil {
					return err
				}
				stdout, stderr, code, err := runDeck(ctx, dir, "open", "chatgpt", "claude", "--popups", "--dry-run")
				if err != nil {
					return err
				}
				if code != 0 {
					return fmt.Errorf("deck open failed with exit code %d: %s", code, stderr)
				}
				if err := assert.Contains(stdout, "500x800+500+0", "second popup should fill the right half"); err != nil {
					return err
				}
				return assert.Contains(stdout, "250ms", "second popup should be staggered")
			}),
		},
	}
}

// OpenUnknownItemScenario ensures unknown ids fail with a hint.
func OpenUnknownItemScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "deck-open-unknown",
		Tags: []string{"deck", "launch", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Open an unknown id", func(ctx *harness.Context) error {
				_, stderr, code, err := runDeck(ctx, ctx.RootDir, "open", "nope", "--dry-run")
				if err != nil {
					return err
				}
				if err := assert.Equal(1, code, "unknown id should fail"); err != nil {
					return err
				}
				return assert.Contains(stderr, "nope", "error should name the id")
			}),
		},
	}
}
