package db

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/styleguide-audit/models"
)

// FixRow is a persisted fix attempt.
type FixRow struct {
	FilePath string
	RuleID   string
	Line     int
	Success  bool
	Error    string
}

// SaveFixAttempts stores a fix ledger snapshot for a run.
func (db *DB) SaveFixAttempts(runID int64, attempts map[string][]models.FixAttempt) error {
	paths := make([]string, 0, len(attempts))
	for p := range attempts {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, path := range paths {
		for _, a := range attempts[path] {
			_, err := tx.Exec(`
				INSERT INTO fix_attempts (run_id, file_path, rule_id, line, success, error_message)
				VALUES (?, ?, ?, ?, ?, ?)
			`, runID, path, a.Issue.RuleID, a.Issue.Line, a.Success, a.Error)
			if err != nil {
				return fmt.Errorf("failed to insert fix attempt for %s: %w", path, err)
			}
		}
	}
	return tx.Commit()
}

// GetFixAttempts returns the fix attempts of a run in insertion order.
func (db *DB) GetFixAttempts(runID int64) ([]FixRow, error) {
	rows, err := db.Query(`
		SELECT file_path, rule_id, COALESCE(line, 0), success, COALESCE(error_message, '')
		FROM fix_attempts
		WHERE run_id = ?
		ORDER BY attempt_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fix attempts for run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []FixRow
	for rows.Next() {
		var f FixRow
		if err := rows.Scan(&f.FilePath, &f.RuleID, &f.Line, &f.Success, &f.Error); err != nil {
			return nil, fmt.Errorf("failed to scan fix attempt: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
