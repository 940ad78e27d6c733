// Package audit implements the default command: audit pages, optionally fix
// them, and write reports.
package audit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/styleguide-audit/internal/common"
	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/caching"
	"github.com/dtnitsch/styleguide-audit/pkg/db"
	"github.com/dtnitsch/styleguide-audit/pkg/engine"
	"github.com/dtnitsch/styleguide-audit/pkg/fixer"
	"github.com/dtnitsch/styleguide-audit/pkg/report"
	"github.com/dtnitsch/styleguide-audit/pkg/scanner"
	"github.com/dtnitsch/styleguide-audit/pkg/storage"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// Options are the audit flags after validation.
type Options struct {
	Dir       string
	Component string
	Report    bool
	Format    report.Format
	Output    string
	Fix       bool
	DryRun    bool
	Workers   int
	Quiet     bool
	DBPath    string
	Record    bool

	// Cache carries page results across runs in watch mode.
	Cache *caching.Cache
}

// ParseOptions validates the flag combination.
func ParseOptions(c *cli.Context) (Options, error) {
	opts := Options{
		Dir:       c.String("dir"),
		Component: c.String("component"),
		Report:    c.Bool("report") || c.IsSet("format") || c.IsSet("output"),
		Output:    c.String("output"),
		Fix:       c.Bool("fix"),
		DryRun:    c.Bool("dry-run"),
		Workers:   c.Int("workers"),
		Quiet:     c.Bool("quiet"),
		DBPath:    c.String("db"),
		Record:    c.IsSet("db"),
	}
	if opts.DryRun && !opts.Fix {
		return opts, common.Usage("--dry-run requires --fix")
	}
	if opts.Workers < 1 {
		return opts, common.Usage("--workers must be at least 1")
	}
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return opts, common.Usage("%v", err)
	}
	opts.Format = format
	return opts, nil
}

// Outcome is what one audit pass produced.
type Outcome struct {
	RunID   string
	Result  models.AuditResult
	Fixes   []models.FixResult
	Ledger  *fixer.Ledger
	Written int
	Report  string
}

// AuditAction is the root command.
func AuditAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	opts, err := ParseOptions(c)
	if err != nil {
		return err
	}
	guide, err := common.LoadGuide(c)
	if err != nil {
		return common.Fatal(logger, "invalid style guide", err)
	}

	out, err := Run(opts, guide, logger)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintln(c.App.Writer, report.Terminal(out.Result, out.Fixes))
		if out.Report != "" {
			fmt.Fprintf(c.App.Writer, "Report written to %s\n", out.Report)
		}
		if opts.DryRun {
			fmt.Fprintln(c.App.Writer, "Dry run: no files were modified")
		}
	}

	if code := ExitCode(opts, out); code != common.ExitOK {
		return cli.Exit("", code)
	}
	return nil
}

// Run scans, audits, fixes, reports and records one pass.
func Run(opts Options, guide *models.StyleGuide, logger *slog.Logger) (*Outcome, error) {
	startTime := time.Now()
	out := &Outcome{RunID: uuid.NewString()}
	logger = logger.With("run_id", out.RunID)

	s := &storage.Storage{}
	docs, err := scanner.Scan(s, opts.Dir, opts.Component)
	if err != nil {
		return nil, common.Fatal(logger, "failed to scan pages", err)
	}
	if opts.Component != "" && len(docs) == 0 {
		return nil, common.Usage("no page found for component %q under %s", opts.Component, opts.Dir)
	}
	logger.Info("pages found", "dir", opts.Dir, "count", len(docs))

	e := engine.New(guide, logger)
	e.Workers = opts.Workers
	e.Cache = opts.Cache
	out.Result = e.Audit(docs)

	if opts.Fix {
		out.Ledger = fixer.NewLedger()
		f := fixer.New(logger, out.Ledger)
		for i, doc := range docs {
			page := out.Result.Pages[i]
			fr := f.Fix(doc, page.Issues)
			out.Fixes = append(out.Fixes, fr)
			if opts.DryRun || len(fr.Fixed) == 0 {
				continue
			}
			if err := s.SaveFile(doc.FilePath, []byte(fr.Content)); err != nil {
				return nil, common.Fatal(logger, "failed to write fixed page", err)
			}
			out.Written++
		}
		logger.Info("fix phase complete", "files_written", out.Written, "dry_run", opts.DryRun)
	}

	if opts.Report {
		path, err := report.Write(opts.Output, opts.Format, out.Result, out.Fixes, s)
		if err != nil {
			return nil, common.Fatal(logger, "failed to write report", err)
		}
		out.Report = path
	}

	if opts.Record {
		if err := record(opts, out, logger); err != nil {
			return nil, common.Fatal(logger, "failed to record run", err)
		}
	}

	logger.Info("audit finished", "duration", time.Since(startTime).String())
	return out, nil
}

func record(opts Options, out *Outcome, logger *slog.Logger) error {
	database, err := db.Open(opts.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.InsertRun(out.RunID, opts.Dir, opts.Fix, out.Result)
	if err != nil {
		return err
	}
	if out.Ledger != nil {
		if err := database.SaveFixAttempts(run.RunID, out.Ledger.All()); err != nil {
			return err
		}
	}
	logger.Info("run recorded", "db", database.Path())
	return nil
}

// ExitCode maps an outcome to the process exit code: a compliant corpus
// always succeeds, fix runs succeed when something was fixed, audit runs
// fail while issues remain.
func ExitCode(opts Options, out *Outcome) int {
	if out.Result.TotalIssues == 0 {
		return common.ExitOK
	}
	if opts.Fix {
		for _, f := range out.Fixes {
			if len(f.Fixed) > 0 {
				return common.ExitOK
			}
		}
		return common.ExitIssues
	}
	if out.Result.TotalIssues > 0 {
		return common.ExitIssues
	}
	return common.ExitOK
}
