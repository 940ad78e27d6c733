// Package watch re-audits pages whenever they change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/styleguide-audit/internal/audit"
	"github.com/dtnitsch/styleguide-audit/internal/common"
	"github.com/dtnitsch/styleguide-audit/pkg/caching"
	"github.com/dtnitsch/styleguide-audit/pkg/report"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

// debounce collapses bursts of editor writes into one audit.
const debounce = 300 * time.Millisecond

// cacheSize bounds the page results kept between audits.
const cacheSize = 512

// WatchAction audits once, then again after every change to a .tsx file.
func WatchAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	opts, err := audit.ParseOptions(c)
	if err != nil {
		return err
	}
	if opts.Fix {
		return common.Usage("watch does not apply fixes; run with --fix once instead")
	}
	guide, err := common.LoadGuide(c)
	if err != nil {
		return common.Fatal(logger, "invalid style guide", err)
	}
	opts.Cache = caching.NewCache(cacheSize, 0)

	trigger := func() {
		out, err := audit.Run(opts, guide, logger)
		if err != nil {
			logger.Error("audit failed", "error", err)
			return
		}
		fmt.Fprintln(c.App.Writer, report.Terminal(out.Result, nil))
	}

	trigger()
	if err := Watch(c.Context, opts.Dir, debounce, logger, trigger); err != nil {
		return common.Fatal(logger, "watch failed", err)
	}
	return nil
}

// Watch calls trigger after changes to .tsx files under root settle for
// delay. root may be a single page. Audits run one at a time on the calling
// goroutine. It returns when ctx is done.
func Watch(ctx context.Context, root string, delay time.Duration, logger *slog.Logger, trigger func()) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	// a single page is watched through its directory: atomic writes and
	// editors replace the file, which drops a watch on the file itself
	page := ""
	if info.IsDir() {
		if err := addWatchRecursive(watcher, root); err != nil {
			return err
		}
	} else {
		page = filepath.Clean(root)
		if err := watcher.Add(filepath.Dir(page)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	logger.Info("watching for page changes", "path", root)

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fire:
			trigger()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// new directories need their own watch
			if page == "" && ev.Has(fsnotify.Create) && filepath.Ext(ev.Name) == "" {
				if err := addWatchRecursive(watcher, ev.Name); err != nil {
					logger.Debug("could not watch new path", "path", ev.Name, "error", err)
				}
			}
			if !Relevant(ev) || (page != "" && filepath.Clean(ev.Name) != page) {
				continue
			}
			logger.Debug("page changed", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(delay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// Relevant reports whether an event should trigger a re-audit.
func Relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".tsx" {
		return false
	}
	// skip atomic-write temp files and editor backups
	if strings.Contains(filepath.Base(ev.Name), ".tmp.") {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case "node_modules", ".git", ".next":
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}
