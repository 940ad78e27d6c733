// Package common holds helpers shared by the command actions.
package common

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/urfave/cli/v2"
)

// Exit codes.
const (
	ExitOK     = 0 // compliant, or fixes applied
	ExitIssues = 1 // issues remain, or nothing was fixed
	ExitFatal  = 2 // invalid arguments or an unrecoverable error
)

// NewLogger builds the JSON stderr logger, honouring --quiet and --verbose.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	switch {
	case c.Bool("quiet"):
		logLevel = slog.LevelError
	case c.Bool("verbose"):
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))
}

// LoadGuide reads the --config style guide, or returns the default.
func LoadGuide(c *cli.Context) (*models.StyleGuide, error) {
	guide, err := models.LoadStyleGuide(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load style guide: %w", err)
	}
	return guide, nil
}

// Fatal logs err and turns it into a cli exit error with ExitFatal.
func Fatal(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", err)
	return cli.Exit(fmt.Sprintf("Error: %s: %v", msg, err), ExitFatal)
}

// Usage reports invalid arguments with ExitFatal.
func Usage(format string, args ...any) error {
	return cli.Exit("Error: "+fmt.Sprintf(format, args...), ExitFatal)
}
