package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/labels"
	"github.com/spf13/cobra"
)

var (
	flagPage    int
	flagLanding bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the catalog without the TUI",
	Long: `Fetch the catalog, apply --search and --type, and print the requested page
as plain text. Exits non-zero when the catalog listing cannot be fetched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, done, err := setup(flagLanding)
		if err != nil {
			return err
		}
		defer done()

		if err := preloadQuery(d, flagSearch, flagTypes); err != nil {
			return err
		}
		return runList(cmd.Context(), cmd.OutOrStdout(), d, flagPage)
	},
}

func init() {
	listCmd.Flags().IntVar(&flagPage, "page", 1, "page number to print")
	listCmd.Flags().BoolVar(&flagLanding, "landing", false, "behave like the landing view (nothing listed without a query)")
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the configured types and their labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, done, err := setup(false)
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		for _, key := range d.cfg.Types {
			fmt.Fprintf(out, "%-10s %s\n", key, d.labels.TypeLabel(key))
		}
		return nil
	},
}

func runList(ctx context.Context, out io.Writer, d *deps, page int) error {
	if err := d.browser.Load(ctx, d.client); err != nil {
		return err
	}
	view, err := d.browser.Apply(ctx)
	if err != nil {
		return err
	}
	if page != 1 {
		if view, err = d.browser.Show(ctx, page); err != nil {
			return err
		}
	}
	writeView(out, view, d.labels)
	return nil
}

func writeView(out io.Writer, view catalog.View, tr *labels.Translator) {
	if view.Empty {
		fmt.Fprintln(out, tr.Empty())
		return
	}
	if view.Page.Count == 0 {
		return
	}
	if len(view.Page.Items) == 0 {
		fmt.Fprintf(out, "page %d out of range (1-%d)\n", view.Page.Index, view.Page.Total)
		return
	}

	for _, c := range view.Cards {
		fmt.Fprintln(out, formatCard(c, tr))
	}
	if len(view.Cards) < len(view.Page.Items) {
		fmt.Fprintf(out, "(%d could not be loaded)\n", len(view.Page.Items)-len(view.Cards))
	}

	fmt.Fprintf(out, "\npage %d/%d · %d results\n", view.Page.Index, view.Page.Total, view.Page.Count)
	if line := formatPager(view.Controls, tr); line != "" {
		fmt.Fprintln(out, line)
	}
}

func formatCard(d *catalog.Detail, tr *labels.Translator) string {
	return fmt.Sprintf("%s  %-20s %s", labels.Number(d.ID), tr.DisplayName(d.Name), tr.TypeLabel(d.PrimaryType()))
}

// formatPager renders controls as text: the current page in brackets and
// disabled controls in parentheses.
func formatPager(controls []catalog.Control, tr *labels.Translator) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		label := c.Label
		switch c.Kind {
		case catalog.ControlPrev:
			label = tr.Prev()
		case catalog.ControlNext:
			label = tr.Next()
		}
		switch {
		case c.Current:
			label = "[" + label + "]"
		case c.Disabled:
			label = "(" + label + ")"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
