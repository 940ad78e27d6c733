package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/styleguide-audit/internal/audit"
	"github.com/dtnitsch/styleguide-audit/internal/common"
	"github.com/dtnitsch/styleguide-audit/internal/history"
	"github.com/dtnitsch/styleguide-audit/internal/watch"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func auditFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Value:   "app",
			Usage:   "Directory holding <component>/page.tsx documentation pages (or a single .tsx file)",
		},
		&cli.StringFlag{
			Name:    "component",
			Aliases: []string{"c"},
			Usage:   "Only audit the page of this component",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML style guide overriding the built-in defaults",
		},
		&cli.BoolFlag{
			Name:  "report",
			Usage: "Write a report file to --output",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "json",
			Usage:   "Report format: json, markdown, html or yaml",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "reports",
			Usage:   "Directory for report files",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 4,
			Usage: "Number of pages audited concurrently",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "Record the run in this SQLite history database",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log errors and skip the console summary",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug details",
		},
	}
}

func newApp() *cli.App {
	flags := auditFlags()
	rootFlags := append(auditFlags(),
		&cli.BoolFlag{
			Name:  "fix",
			Usage: "Apply auto-fixable corrections to the pages",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "With --fix, compute fixes without writing files",
		},
	)

	return &cli.App{
		Name:    "styleguide-audit",
		Usage:   "Audit component documentation pages against the style guide",
		Version: version,
		Flags:   rootFlags,
		Action:  audit.AuditAction,
		Commands: []*cli.Command{
			{
				Name:   "watch",
				Usage:  "Re-audit pages whenever they change",
				Flags:  flags,
				Action: watch.WatchAction,
			},
			{
				Name:  "history",
				Usage: "Inspect recorded audit runs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "History database (default: next to the binary)"},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List recorded runs, newest first",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum runs to show (0 for all)"}},
						Action: history.RunsAction,
					},
					{
						Name:      "show",
						Usage:     "Show one run (default: the latest)",
						ArgsUsage: "[run-id]",
						Action:    history.ShowAction,
					},
				},
				Action: history.RunsAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFatal)
	}
}
