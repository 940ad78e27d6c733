package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"page write", fsnotify.Event{Name: "app/button/page.tsx", Op: fsnotify.Write}, true},
		{"page removed", fsnotify.Event{Name: "app/button/page.tsx", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "app/button/page.tsx", Op: fsnotify.Chmod}, false},
		{"stylesheet", fsnotify.Event{Name: "app/globals.css", Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: "app/button/page.tsx.tmp.42", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relevant(tt.ev); got != tt.want {
				t.Errorf("Relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchTriggersOnChange(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "button")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	triggered := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, 20*time.Millisecond, slog.New(slog.DiscardHandler), func() {
			select {
			case triggered <- struct{}{}:
			default:
			}
		})
	}()

	// give the watcher time to register before writing
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-triggered:
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(filepath.Join(dir, "page.tsx"), []byte("export default () => <div />\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no re-audit after writing a page")
		}
	}
}

func TestWatchSinglePage(t *testing.T) {
	page := filepath.Join(t.TempDir(), "button.tsx")
	if err := os.WriteFile(page, []byte("export default () => <div />\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	triggered := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, page, 20*time.Millisecond, slog.New(slog.DiscardHandler), func() {
			select {
			case triggered <- struct{}{}:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-triggered:
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case err := <-done:
			t.Fatalf("Watch() returned early: %v", err)
		case <-tick.C:
			if err := os.WriteFile(page, []byte("export default () => <main />\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no re-audit after rewriting the watched page")
		}
	}
}

func TestWatchRunsOneAuditAtATime(t *testing.T) {
	root := t.TempDir()
	page := filepath.Join(root, "page.tsx")

	var running, runs atomic.Int32
	var overlapped atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, time.Millisecond, slog.New(slog.DiscardHandler), func() {
			if running.Add(1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(30 * time.Millisecond)
			running.Add(-1)
			runs.Add(1)
		})
	}()

	deadline := time.Now().Add(5 * time.Second)
	for runs.Load() < 3 && time.Now().Before(deadline) {
		if err := os.WriteFile(page, []byte("export default () => <div />\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	if runs.Load() < 3 {
		t.Fatalf("only %d audits ran", runs.Load())
	}
	if overlapped.Load() {
		t.Error("audits overlapped")
	}
}

func TestWatchMissingRoot(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), time.Millisecond, slog.New(slog.DiscardHandler), func() {})
	if err == nil {
		t.Error("Watch() of a missing path should fail")
	}
}
