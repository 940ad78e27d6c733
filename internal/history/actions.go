// Package history implements the commands that read recorded audit runs.
package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/styleguide-audit/pkg/db"
	"github.com/dtnitsch/styleguide-audit/pkg/tally"
	"github.com/urfave/cli/v2"
)

// RunsAction lists recorded runs, newest first.
func RunsAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	PrintRuns(c.App.Writer, runs)
	return nil
}

// PrintRuns writes the run table.
func PrintRuns(w io.Writer, runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return
	}

	fmt.Fprintf(w, "%-36s %-20s %-6s %-8s %-7s %-4s %s\n",
		"Run", "Created", "Pages", "Failing", "Issues", "Fix", "Dir")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		fix := "no"
		if r.FixRun {
			fix = "yes"
		}
		fmt.Fprintf(w, "%-36s %-20s %-6d %-8d %-7d %-4s %s\n",
			r.RunUUID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.TotalPages,
			r.PagesWithIssues,
			r.TotalIssues,
			fix,
			r.RootDir,
		)
	}
	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'styleguide-audit history show <run>' to see details\n")
}

// ShowAction prints one run, the latest when no run id is given.
func ShowAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	run, err := runOrLatest(c, database)
	if err != nil {
		return err
	}
	return PrintRun(c.App.Writer, database, run)
}

// runOrLatest returns the run named by the first argument, or the latest run.
func runOrLatest(c *cli.Context, database *db.DB) (*db.Run, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return nil, fmt.Errorf("no runs found. Run 'styleguide-audit --db <path>' first")
		}
		return &runs[0], nil
	}

	run, err := database.GetRunByUUID(c.Args().First())
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run not found: %s", c.Args().First())
	}
	return run, nil
}

// PrintRun writes the details of one run.
func PrintRun(w io.Writer, database *db.DB, run *db.Run) error {
	pages, err := database.GetRunPages(run.RunID)
	if err != nil {
		return err
	}
	counts, err := database.RuleCounts(run.RunID)
	if err != nil {
		return err
	}
	fixes, err := database.GetFixAttempts(run.RunID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %s\n", run.RunUUID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Directory:   %s\n", run.RootDir)
	fmt.Fprintf(w, "Pages:       %d total (%d with issues)\n", run.TotalPages, run.PagesWithIssues)
	fmt.Fprintf(w, "Issues:      %d\n", run.TotalIssues)

	fmt.Fprintf(w, "\nPages (%d):\n", len(pages))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, p := range pages {
		fmt.Fprintf(w, "%2d. [%s] %3d  %s (%d issues)\n", i+1, p.Status, p.Score, p.FilePath, p.IssueCount)
	}

	if top := tally.Top(counts, 10); len(top) > 0 {
		fmt.Fprintf(w, "\nMost frequent rules:\n")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for i, c := range top {
			fmt.Fprintf(w, "%2d. %s: %d\n", i+1, c.Key, c.Value)
		}
	}

	if len(fixes) > 0 {
		fmt.Fprintf(w, "\nFix attempts (%d):\n", len(fixes))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, f := range fixes {
			status := "fixed"
			if !f.Success {
				status = "failed: " + f.Error
			}
			fmt.Fprintf(w, "  %s:%d %s %s\n", f.FilePath, f.Line, f.RuleID, status)
		}
	}
	return nil
}
