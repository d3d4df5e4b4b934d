package main

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/harness"
)

type catalogOutput struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Items    []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	} `json:"items"`
}

func runCatalogJSON(ctx *harness.Context, dir string, args ...string) (*catalogOutput, error) {
	stdout, stderr, code, err := runDeck(ctx, dir, append([]string{"catalog", "--json"}, args...)...)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("deck catalog failed with exit code %d: %s", code, stderr)
	}
	var out catalogOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w\nOutput:\n%s", err, stdout)
	}
	return &out, nil
}

// CatalogListScenario verifies category filtering and search over the built-in catalog.
func CatalogListScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "deck-catalog-list",
		Description: "Filters the built-in catalog by category and by search query.",
		Tags:        []string{"deck", "catalog"},
		Steps: []harness.Step{
			harness.NewStep("Filter by category", func(ctx *harness.Context) error {
				out, err := runCatalogJSON(ctx, ctx.RootDir, "--category", "Search")
				if err != nil {
					return err
				}
				if err := assert.Equal("Search", out.Category, "category should be echoed"); err != nil {
					return err
				}
				for _, item := range out.Items {
					if item.Category != "Search" {
						return fmt.Errorf("item %s has category %s, want Search", item.ID, item.Category)
					}
				}
				return nil
			}),
			harness.NewStep("Search is case-insensitive", func(ctx *harness.Context) error {
				out, err := runCatalogJSON(ctx, ctx.RootDir, "--query", "CLAUDE")
				if err != nil {
					return err
				}
				if err := assert.Equal(1, out.Total, "one item should match"); err != nil {
					return err
				}
				return assert.Equal("claude", out.Items[0].ID, "claude should match")
			}),
		},
	}
}

// CatalogHiddenScenario verifies that project config can hide catalog items.
func CatalogHiddenScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "deck-catalog-hidden",
		Description: "Hides catalog items matched by catalog.hidden patterns.",
		Tags:        []string{"deck", "catalog", "config"},
		Steps: []harness.Step{
			harness.NewStep("Hide items from project config", func(ctx *harness.Context) error {
				dir, err := writeProjectConfig(ctx, "hidden-project", "catalog:\n  hidden:\n    - \"g*\"\n")
				if err != nil {
					return err
				}
				out, err := runCatalogJSON(ctx, dir)
				if err != nil {
					return err
				}
				for _, item := range out.Items {
					if item.ID == "gemini" || item.ID == "grok" {
						return fmt.Errorf("item %s should be hidden", item.ID)
					}
				}
				return nil
			}),
		},
	}
}
