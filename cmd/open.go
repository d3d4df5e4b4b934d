package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/tui/components/table"
	"github.com/grovetools/deck/tui/theme"
	"github.com/spf13/cobra"
)

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open ID...",
		Short: "Open catalog items as tabs or tiled popup windows",
		Long: `Open catalog items in the order given. Tabs open in the browser one after
another; popups are tiled over the configured work area. Opens are
staggered by launch.stagger_ms.

Examples:
  deck open chatgpt claude
  deck open chatgpt claude gemini copilot --popups --yes
  deck open claude --window
  deck open chatgpt claude --popups --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOpen,
	}
	cmd.Flags().Bool("tabs", false, "Open as browser tabs (default)")
	cmd.Flags().Bool("popups", false, "Open as tiled popup windows")
	cmd.Flags().Bool("window", false, "Open a single item in one centered window")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Bool("dry-run", false, "Print the launch plan without opening anything")
	cmd.MarkFlagsMutuallyExclusive("tabs", "popups", "window")
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	popups, _ := cmd.Flags().GetBool("popups")
	window, _ := cmd.Flags().GetBool("window")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	mode := launcher.ModeTabs
	if popups {
		mode = launcher.ModePopups
	}

	out := cmd.OutOrStdout()
	reporter := cli.NewProgressReporter(out)
	s, err := newSession(cmd, "open", sessionOptions{
		assumeYes: yes,
		wrapHost: func(h launcher.Host) launcher.Host {
			return cli.ProgressHost{Host: h, Reporter: reporter}
		},
	})
	if err != nil {
		return err
	}
	defer s.Close()

	for _, id := range args {
		if _, ok := s.store.Lookup(id); !ok {
			return errors.ItemNotFound(id)
		}
		s.ctrl.Dispatch(engine.Action{Kind: engine.Add, ID: id})
	}
	items := s.ctrl.State().Set.Items()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if window {
		if len(items) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--window opens exactly one item")
		}
		if err := s.launcher.OpenWindow(items[0]); err != nil {
			return err
		}
		return s.hold(ctx, cmd)
	}

	if dryRun {
		printPlan(cmd, s.launcher.Plan(mode, items))
		return nil
	}

	// A single tab needs no confirmation.
	if mode == launcher.ModeTabs && len(items) == 1 {
		if err := s.launcher.OpenTab(items[0]); err != nil {
			return err
		}
		return s.hold(ctx, cmd)
	}

	batch := s.ctrl.Launch(mode)
	if batch == nil {
		fmt.Fprintln(out, theme.DefaultTheme.Muted.Render("Launch cancelled."))
		return nil
	}
	// The first open may already have finished; Update keeps its final status.
	for _, op := range batch.Opens {
		reporter.Update(op.Item.URL, cli.StatusScheduled)
	}

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for reporter.Remaining() > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
	reporter.Done()
	return s.hold(ctx, cmd)
}

// hold keeps chromium windows alive until interrupted. System browser opens
// outlive deck, so there is nothing to wait for.
func (s *session) hold(ctx context.Context, cmd *cobra.Command) error {
	if s.cfg.Launch.PopupBackend == config.BackendSystem {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), theme.DefaultTheme.Muted.Render("Press Ctrl+C to close the windows."))
	<-ctx.Done()
	return nil
}

func printPlan(cmd *cobra.Command, batch *launcher.Batch) {
	if batch == nil {
		return
	}
	rows := make([][]string, 0, batch.Len())
	for _, op := range batch.Opens {
		geometry := "-"
		if op.Geometry != nil {
			g := op.Geometry
			geometry = fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
		}
		rows = append(rows, []string{
			strconv.Itoa(op.Index + 1),
			op.Item.ID,
			op.Name,
			geometry,
			op.Delay.String(),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.SimpleTable([]string{"#", "ID", "TARGET", "GEOMETRY", "DELAY"}, rows))
}
