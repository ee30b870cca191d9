package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/EgorK19/pydeps/pkg/report"
)

// historyListLimit caps how many reports the list view shows.
const historyListLimit = 50

// historyCommand creates the history command tree for browsing saved
// analysis reports.
func (c *CLI) historyCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analysis reports",
		Long: `Browse analysis reports saved with "analyze --save". In a terminal this
opens an interactive picker; otherwise (or with --plain) it prints a
plain listing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runHistoryList(cmd.Context(), plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain listing instead of the interactive picker")

	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyClearCommand())

	return cmd
}

// runHistoryList lists saved reports, interactively when stdout is a
// terminal.
func (c *CLI) runHistoryList(ctx context.Context, plain bool) error {
	store, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	reports, err := store.List(ctx, historyListLimit)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	if len(reports) == 0 {
		printInfo("No saved reports; run analyze --save to create one")
		return nil
	}

	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		for _, r := range reports {
			fmt.Printf("%s  %-20s %-10s %-16s %3d deps  %s\n",
				shortID(r.ID), r.Package, r.Mode, reportSourceLabel(r.Source),
				len(r.Specifiers), r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	}

	m := NewReportListModel(reports)
	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(ReportListModel)
	if !ok || fm.Selected == nil {
		return nil
	}
	renderReport(fm.Selected)
	return nil
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			r, err := findReport(ctx, store, args[0])
			if err != nil {
				return err
			}
			renderReport(r)
			return nil
		},
	}
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("clear reports: %w", err)
			}
			printSuccess("Cleared analysis history")
			return nil
		},
	}
}

// findReport looks a report up by full ID first, then by unique short-ID
// prefix among the stored reports.
func findReport(ctx context.Context, store report.Store, id string) (*report.Report, error) {
	r, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if r != nil {
		return r, nil
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	var match *report.Report
	for _, cand := range all {
		if len(id) > 0 && len(cand.ID) >= len(id) && cand.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("report id %q is ambiguous", id)
			}
			match = cand
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no report with id %q", id)
	}
	return match, nil
}

// renderReport prints one stored report in the analyze output shape.
func renderReport(r *report.Report) {
	printKeyValue("Package", r.Package)
	printKeyValue("Repository", r.Repo)
	printKeyValue("Mode", r.Mode)
	if r.Filter != "" {
		printKeyValue("Filter", r.Filter)
	}
	printKeyValue("Analyzed", r.CreatedAt.Format("2006-01-02 15:04:05"))
	printNewline()

	if len(r.Specifiers) == 0 {
		printInfo("No dependencies recorded")
		return
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Direct dependencies of %s", r.Package)))
	printDetail("source: %s", reportSourceLabel(r.Source))
	for _, spec := range r.Specifiers {
		printListItem(spec, "")
	}
}
