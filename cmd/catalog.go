package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/tui/components/table"
	"github.com/grovetools/deck/tui/theme"
	"github.com/spf13/cobra"
)

type catalogPage struct {
	Category string         `json:"category"`
	Query    string         `json:"query"`
	Page     int            `json:"page"`
	Total    int            `json:"total"`
	HasNext  bool           `json:"has_next"`
	HasPrev  bool           `json:"has_prev"`
	Items    []catalog.Item `json:"items"`
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog items",
		Long: `List the catalog, filtered by category and name and split into pages.

Examples:
  # Everything in the Major category
  deck catalog --category Major

  # Case-insensitive name search
  deck catalog --query claude

  # Second page of ten
  deck catalog --page-size 10 --page 2`,
		Args: cobra.NoArgs,
		RunE: runCatalog,
	}
	cmd.Flags().String("category", catalog.AllCategories, "Category to show")
	cmd.Flags().StringP("query", "q", "", "Substring to match against item names")
	cmd.Flags().Int("page", 1, "Page number, starting at 1")
	cmd.Flags().Int("page-size", 0, "Items per page (default: catalog.page_size)")
	cmd.Flags().Bool("categories", false, "List categories instead of items")
	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	opts := cli.GetOptions(cmd)
	out := cmd.OutOrStdout()

	if only, _ := cmd.Flags().GetBool("categories"); only {
		if opts.JSONOutput {
			return json.NewEncoder(out).Encode(store.Categories())
		}
		for _, c := range store.Categories() {
			fmt.Fprintln(out, c)
		}
		return nil
	}

	category, _ := cmd.Flags().GetString("category")
	query, _ := cmd.Flags().GetString("query")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize <= 0 {
		pageSize = cfg.Catalog.PageSize
	}

	view := catalog.NewView(pageSize).WithCategory(category).WithQuery(query)
	res := view.Apply(store.Items())
	for i := 1; i < page && res.HasNext; i++ {
		view = view.NextPage(res.Total())
		res = view.Apply(store.Items())
	}

	if opts.JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(catalogPage{
			Category: view.Category,
			Query:    view.Query,
			Page:     res.Page + 1,
			Total:    res.Total(),
			HasNext:  res.HasNext,
			HasPrev:  res.HasPrev,
			Items:    res.Visible,
		})
	}

	if len(res.Visible) == 0 {
		fmt.Fprintln(out, theme.DefaultTheme.Muted.Render("No matching items."))
		return nil
	}

	rows := make([][]string, len(res.Visible))
	for i, item := range res.Visible {
		rows[i] = []string{item.ID, item.Name, item.Category, item.URL}
	}
	fmt.Fprintln(out, table.NewBuilder().
		WithHeaders("ID", "NAME", "CATEGORY", "URL").
		WithRows(rows...).
		WithMutedColumn(3).
		Build().
		String())

	first, last := view.Range(res.Total())
	footer := fmt.Sprintf("%d-%d of %d", first, last, res.Total())
	if view.Paginated(res.Total()) {
		footer += ", page " + strconv.Itoa(res.Page+1)
	}
	fmt.Fprintln(out, theme.DefaultTheme.Muted.Render(footer))
	return nil
}
