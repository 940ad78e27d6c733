package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/google/uuid"
)

// Run is a persisted audit run.
type Run struct {
	RunID           int64
	RunUUID         string
	CreatedAt       time.Time
	RootDir         string
	TotalPages      int
	PagesWithIssues int
	TotalIssues     int
	FixRun          bool
}

// PageRow is a persisted page result.
type PageRow struct {
	PageID     int64
	FilePath   string
	Component  string
	Score      int
	Status     models.Status
	IssueCount int
}

// InsertRun stores an audit result with its pages and issues in one
// transaction. An empty runUUID gets a fresh one.
func (db *DB) InsertRun(runUUID, rootDir string, fixRun bool, result models.AuditResult) (*Run, error) {
	if runUUID == "" {
		runUUID = uuid.NewString()
	}
	createdAt := result.GeneratedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	res, err := tx.Exec(`
		INSERT INTO audit_runs (run_uuid, created_at, root_dir, total_pages, pages_with_issues, total_issues, fix_run)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runUUID, createdAt.UTC(), rootDir, result.TotalPages, result.PagesWithIssues, result.TotalIssues, fixRun)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, page := range result.Pages {
		res, err := tx.Exec(`
			INSERT INTO page_results (run_id, file_path, component, score, status, issue_count)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, page.FilePath, page.Component, page.Score, string(page.Status), page.IssueCount)
		if err != nil {
			return nil, fmt.Errorf("failed to insert page %s: %w", page.FilePath, err)
		}
		pageID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get page ID: %w", err)
		}
		for _, is := range page.Issues {
			_, err := tx.Exec(`
				INSERT INTO issues (page_id, rule_id, category, severity, line, message, auto_fixable)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, pageID, is.RuleID, string(is.Category), string(is.Severity), is.Line, is.Message, is.AutoFixable)
			if err != nil {
				return nil, fmt.Errorf("failed to insert issue %s: %w", is.RuleID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return &Run{
		RunID:           runID,
		RunUUID:         runUUID,
		CreatedAt:       createdAt.UTC(),
		RootDir:         rootDir,
		TotalPages:      result.TotalPages,
		PagesWithIssues: result.PagesWithIssues,
		TotalIssues:     result.TotalIssues,
		FixRun:          fixRun,
	}, nil
}

const runColumns = `run_id, run_uuid, created_at, root_dir, total_pages, pages_with_issues, total_issues, fix_run`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var r Run
	if err := row.Scan(&r.RunID, &r.RunUUID, &r.CreatedAt, &r.RootDir,
		&r.TotalPages, &r.PagesWithIssues, &r.TotalIssues, &r.FixRun); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM audit_runs ORDER BY created_at DESC, run_id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRunByUUID returns the run with the given UUID, or nil if there is none.
func (db *DB) GetRunByUUID(runUUID string) (*Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM audit_runs WHERE run_uuid = ?`, runUUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runUUID, err)
	}
	return r, nil
}

// GetRunPages returns the page results of a run ordered by file path.
func (db *DB) GetRunPages(runID int64) ([]PageRow, error) {
	rows, err := db.Query(`
		SELECT page_id, file_path, COALESCE(component, ''), score, status, issue_count
		FROM page_results
		WHERE run_id = ?
		ORDER BY file_path
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages for run %d: %w", runID, err)
	}
	defer rows.Close()

	var pages []PageRow
	for rows.Next() {
		var p PageRow
		var status string
		if err := rows.Scan(&p.PageID, &p.FilePath, &p.Component, &p.Score, &status, &p.IssueCount); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		p.Status = models.Status(status)
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// RuleCounts returns how many issues each rule reported in a run.
func (db *DB) RuleCounts(runID int64) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT i.rule_id, COUNT(*)
		FROM issues i
		JOIN page_results p ON p.page_id = i.page_id
		WHERE p.run_id = ?
		GROUP BY i.rule_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rules for run %d: %w", runID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rule string
		var n int
		if err := rows.Scan(&rule, &n); err != nil {
			return nil, fmt.Errorf("failed to scan rule count: %w", err)
		}
		counts[rule] = n
	}
	return counts, rows.Err()
}
