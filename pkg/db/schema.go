package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Audit runs: one row per audit invocation
CREATE TABLE IF NOT EXISTS audit_runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL,
    root_dir TEXT NOT NULL,
    total_pages INTEGER NOT NULL DEFAULT 0,
    pages_with_issues INTEGER NOT NULL DEFAULT 0,
    total_issues INTEGER NOT NULL DEFAULT 0,
    fix_run BOOLEAN DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON audit_runs(created_at DESC);

-- Page results: per-document score and status within a run
CREATE TABLE IF NOT EXISTS page_results (
    page_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    file_path TEXT NOT NULL,
    component TEXT,
    score INTEGER NOT NULL,
    status TEXT NOT NULL,          -- compliant, needs-review, needs-fixes
    issue_count INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES audit_runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, file_path)
);

CREATE INDEX IF NOT EXISTS idx_pages_run ON page_results(run_id);
CREATE INDEX IF NOT EXISTS idx_pages_path ON page_results(file_path);

-- Issues: every issue reported for a page
CREATE TABLE IF NOT EXISTS issues (
    issue_id INTEGER PRIMARY KEY AUTOINCREMENT,
    page_id INTEGER NOT NULL,
    rule_id TEXT NOT NULL,
    category TEXT NOT NULL,
    severity TEXT NOT NULL,
    line INTEGER,
    message TEXT NOT NULL,
    auto_fixable BOOLEAN DEFAULT 0,
    FOREIGN KEY (page_id) REFERENCES page_results(page_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_page ON issues(page_id);
CREATE INDEX IF NOT EXISTS idx_issues_rule ON issues(rule_id);

-- Fix attempts: the fix ledger of a run
CREATE TABLE IF NOT EXISTS fix_attempts (
    attempt_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    file_path TEXT NOT NULL,
    rule_id TEXT NOT NULL,
    line INTEGER,
    success BOOLEAN NOT NULL,
    error_message TEXT,
    FOREIGN KEY (run_id) REFERENCES audit_runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_fix_attempts_run ON fix_attempts(run_id);
`
