package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per consolidation run, success or terminal failure
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    company_name TEXT NOT NULL,
    source_dir TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    recursive BOOLEAN DEFAULT 0,
    key_field TEXT NOT NULL,

    -- success, invalid_directory, no_files_found, no_valid_data, write_failure
    status TEXT NOT NULL,
    error_message TEXT,

    files_processed INTEGER DEFAULT 0,
    files_failed INTEGER DEFAULT 0,
    total_records INTEGER DEFAULT 0,
    duplicate_groups INTEGER DEFAULT 0,
    extra_occurrences INTEGER DEFAULT 0,
    output_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Run failures: files that could not be ingested during a run
CREATE TABLE IF NOT EXISTS run_failures (
    failure_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    file_name TEXT NOT NULL,
    error_message TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_failures_run ON run_failures(run_id);
`
