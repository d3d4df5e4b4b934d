package main

import (
	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "deck-basic-version",
		Tags: []string{"deck", "basic"},
		Steps: []harness.Step{
			harness.NewStep("Run 'deck version'", func(ctx *harness.Context) error {
				stdout, _, code, err := runDeck(ctx, ctx.RootDir, "version")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "deck version should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "Version:", "Output should contain Version"); err != nil {
					return err
				}
				return assert.Contains(stdout, "Commit:", "Output should contain Commit")
			}),
		},
	}
}

// KeysScenario checks that the key binding reference is printed.
func KeysScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "deck-basic-keys",
		Tags: []string{"deck", "basic"},
		Steps: []harness.Step{
			harness.NewStep("Run 'deck keys'", func(ctx *harness.Context) error {
				stdout, _, code, err := runDeck(ctx, ctx.RootDir, "keys")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "deck keys should exit successfully"); err != nil {
					return err
				}
				return assert.Contains(stdout, "open popups", "Output should list the popup launch binding")
			}),
		},
	}
}
