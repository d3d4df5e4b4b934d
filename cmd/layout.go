package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/tui/components/table"
	"github.com/grovetools/deck/workspace"
	"github.com/spf13/cobra"
)

type layoutReport struct {
	Count  int             `json:"count"`
	Grid   *workspace.Grid `json:"grid,omitempty"`
	Area   *launcher.Rect  `json:"area,omitempty"`
	Popups []launcher.Rect `json:"popups,omitempty"`
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout COUNT",
		Short: "Show the tile grid and popup placement for a workspace size",
		Long: `Show how COUNT workspace items are arranged on screen and where their
popup windows would be placed in the configured work area.

Examples:
  deck layout 5
  deck layout 4 --width 1000 --height 800`,
		Args: cobra.ExactArgs(1),
		RunE: runLayout,
	}
	cmd.Flags().Int("width", 0, "Work area width (default: screen.width)")
	cmd.Flags().Int("height", 0, "Work area height (default: screen.height)")
	return cmd
}

func runLayout(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("COUNT must be a non-negative integer, got %q", args[0]))
	}

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	area := launcher.Rect{Width: cfg.Screen.Width, Height: cfg.Screen.Height}
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		area.Width = w
	}
	if h, _ := cmd.Flags().GetInt("height"); h > 0 {
		area.Height = h
	}

	report := layoutReport{Count: count}
	if grid, ok := workspace.ResolveGrid(count); ok {
		report.Grid = &grid
	}
	if !area.Empty() {
		report.Area = &area
		report.Popups = launcher.Tile(count, area)
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	grid := "empty"
	if report.Grid != nil {
		grid = fmt.Sprintf("%dx%d", report.Grid.Columns, report.Grid.Rows)
	}
	cols, rows := launcher.PopupGrid(count)
	status := [][]string{
		{"tiles", strconv.Itoa(count)},
		{"grid", grid},
		{"popup grid", fmt.Sprintf("%dx%d", cols, rows)},
	}
	if report.Area == nil {
		status = append(status, []string{"work area", "unknown (popups open without placement)"})
	} else {
		status = append(status, []string{"work area", fmt.Sprintf("%dx%d", area.Width, area.Height)})
	}
	fmt.Fprintln(out, table.StatusTable(status))

	if len(report.Popups) > 0 {
		rowsOut := make([][]string, len(report.Popups))
		for i, r := range report.Popups {
			rowsOut[i] = []string{
				strconv.Itoa(i + 1),
				fmt.Sprintf("%d,%d", r.X, r.Y),
				fmt.Sprintf("%dx%d", r.Width, r.Height),
			}
		}
		fmt.Fprintln(out, table.SimpleTable([]string{"#", "POSITION", "SIZE"}, rowsOut))
	}
	return nil
}
