package main

import (
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// ConfigLayeringScenario verifies that global, project, and override configs are merged.
func ConfigLayeringScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "deck-config-layering",
		Description: "Verifies that global, project, and override configs are merged correctly.",
		Tags:        []string{"deck", "config"},
		Steps: []harness.Step{
			harness.NewStep("Setup layered configuration and verify merge logic", func(ctx *harness.Context) error {
				globalDir := filepath.Join(ctx.HomeDir(), ".config", "deck")
				if err := fs.CreateDir(globalDir); err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(globalDir, "deck.yml"), "catalog:\n  page_size: 20\nlaunch:\n  stagger_ms: 500\n"); err != nil {
					return err
				}
				dir, err := writeProjectConfig(ctx, "layered-project", "catalog:\n  page_size: 10\n")
				if err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(dir, "deck.override.yml"), "launch:\n  stagger_ms: 100\n"); err != nil {
					return err
				}

				stdout, _, code, err := runDeck(ctx, dir, "config", "show")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "config show should succeed"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "GLOBAL CONFIG", "global layer should be listed"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "OVERRIDE CONFIG", "override layer should be listed"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "page_size: 10", "project page size should win"); err != nil {
					return err
				}
				return assert.Contains(stdout, "stagger_ms: 100", "override stagger should win")
			}),
		},
	}
}

// ConfigValidateScenario checks validation of good and bad configs.
func ConfigValidateScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "deck-config-validate",
		Tags: []string{"deck", "config"},
		Steps: []harness.Step{
			harness.NewStep("Valid config passes", func(ctx *harness.Context) error {
				dir, err := writeProjectConfig(ctx, "valid-project", "launch:\n  popup_backend: system\n")
				if err != nil {
					return err
				}
				stdout, _, code, err := runDeck(ctx, dir, "config", "validate", "--json")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "valid config should pass"); err != nil {
					return err
				}
				return assert.Contains(stdout, `"valid":true`, "validation should report success")
			}),
			harness.NewStep("Unknown backend fails", func(ctx *harness.Context) error {
				dir, err := writeProjectConfig(ctx, "invalid-project", "launch:\n  popup_backend: carrier-pigeon\n")
				if err != nil {
					return err
				}
				_, _, code, err := runDeck(ctx, dir, "config", "validate")
				if err != nil {
					return err
				}
				return assert.Equal(1, code, "invalid config should fail")
			}),
		},
	}
}
