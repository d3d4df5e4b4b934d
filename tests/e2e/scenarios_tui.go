package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/grovetools/tend/pkg/harness"
	"github.com/grovetools/tend/pkg/tui"
)

// DeckTUIScenario drags an item into the workspace and cancels the launch prompt.
func DeckTUIScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "deck-tui-drag-drop",
		Description: "Picks up an item, drops it on the workspace and declines the launch.",
		Tags:        []string{"deck", "tui", "interactive"},
		Steps: []harness.Step{
			harness.NewStep("Launch deck TUI", func(ctx *harness.Context) error {
				dir, err := writeProjectConfig(ctx, "tui-project", "ticker:\n  enabled: false\nlaunch:\n  popup_backend: system\n")
				if err != nil {
					return err
				}
				bin, err := findDeckBinary()
				if err != nil {
					return err
				}
				session, err := ctx.StartTUI(bin, []string{"--config", filepath.Join(dir, "deck.yml")})
				if err != nil {
					return fmt.Errorf("failed to start TUI: %w", err)
				}
				ctx.Set("tui_session", session)
				return nil
			}),
			harness.NewStep("Drag and drop the first item", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := session.WaitForText("Drag items here", 10*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("TUI did not load within timeout: %w\nContent: %s", err, content)
				}
				if err := session.SendKeys("Space"); err != nil {
					return err
				}
				if err := session.WaitStable(); err != nil {
					return err
				}
				if err := session.SendKeys("Enter"); err != nil {
					return err
				}
				if err := session.WaitStable(); err != nil {
					return err
				}
				if err := session.AssertNotContains("Drag items here"); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("drop did not fill the workspace: %w\nContent: %s", err, content)
				}
				return nil
			}),
			harness.NewStep("Decline the launch prompt", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := session.SendKeys("t"); err != nil {
					return err
				}
				if err := session.WaitForText("Attempting to open", 5*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("launch prompt not shown: %w\nContent: %s", err, content)
				}
				if err := session.SendKeys("n"); err != nil {
					return err
				}
				if err := session.WaitForText("Launch cancelled", 5*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("decline not reported: %w\nContent: %s", err, content)
				}
				return session.SendKeys("q")
			}),
		},
	}
}
