package fixer

import (
	"sort"
	"sync"

	"github.com/dtnitsch/styleguide-audit/models"
)

// Ledger keeps the fix attempts made per file path until cleared. It is safe
// for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	entries map[string][]models.FixAttempt
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string][]models.FixAttempt)}
}

// Record appends an attempt to path's history.
func (l *Ledger) Record(path string, attempt models.FixAttempt) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[path] = append(l.entries[path], attempt)
}

// History returns a copy of the attempts recorded for path.
func (l *Ledger) History(path string) []models.FixAttempt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.FixAttempt(nil), l.entries[path]...)
}

// Paths returns the recorded file paths, sorted.
func (l *Ledger) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	paths := make([]string, 0, len(l.entries))
	for p := range l.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// All returns a copy of every recorded attempt keyed by path.
func (l *Ledger) All() map[string][]models.FixAttempt {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string][]models.FixAttempt, len(l.entries))
	for p, attempts := range l.entries {
		out[p] = append([]models.FixAttempt(nil), attempts...)
	}
	return out
}

// Clear forgets every recorded attempt.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string][]models.FixAttempt)
}
