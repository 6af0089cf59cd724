package db

import (
	"database/sql"
	"fmt"
	"time"

	"hashmerge/models"
)

// Run is one recorded consolidation run.
type Run struct {
	RunID            int64
	CreatedAt        time.Time
	CompanyName      string
	SourceDir        string
	OutputDir        string
	Recursive        bool
	KeyField         string
	Status           string
	ErrorMessage     sql.NullString
	FilesProcessed   int
	FilesFailed      int
	TotalRecords     int
	DuplicateGroups  int
	ExtraOccurrences int
	OutputPath       sql.NullString
}

// RunFailure is one file that failed ingestion during a run.
type RunFailure struct {
	FailureID int64
	RunID     int64
	FileName  string
	Message   string
}

// RecordSuccess stores a completed run together with its per-file
// failures. Returns the new run ID.
func (db *DB) RecordSuccess(cfg models.RunConfig, result *models.RunResult) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO runs (company_name, source_dir, output_dir, recursive, key_field,
			status, files_processed, files_failed, total_records,
			duplicate_groups, extra_occurrences, output_path)
		VALUES (?, ?, ?, ?, ?, 'success', ?, ?, ?, ?, ?, ?)`,
		cfg.CompanyName, cfg.SourceDir, cfg.OutputDir, cfg.Recursive, keyFieldOf(cfg),
		result.FilesProcessed, result.FilesFailed, result.TotalRecords,
		result.Duplicates.DuplicateGroups, result.Duplicates.ExtraOccurrences,
		result.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, failure := range result.Failures {
		if err := db.insertRunFailure(runID, failure.File, failure.Message); err != nil {
			return runID, err
		}
	}

	return runID, nil
}

// RecordFailure stores a run that ended in a terminal error.
func (db *DB) RecordFailure(cfg models.RunConfig, kind models.ErrorKind, message string) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO runs (company_name, source_dir, output_dir, recursive, key_field,
			status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cfg.CompanyName, cfg.SourceDir, cfg.OutputDir, cfg.Recursive, keyFieldOf(cfg),
		string(kind), message)
	if err != nil {
		return 0, fmt.Errorf("failed to insert failed run: %w", err)
	}
	return res.LastInsertId()
}

func (db *DB) insertRunFailure(runID int64, fileName, message string) error {
	_, err := db.Exec(`
		INSERT INTO run_failures (run_id, file_name, error_message)
		VALUES (?, ?, ?)`,
		runID, fileName, message)
	if err != nil {
		return fmt.Errorf("failed to insert run failure: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, company_name, source_dir, output_dir, recursive,
			key_field, status, error_message, files_processed, files_failed,
			total_records, duplicate_groups, extra_occurrences, output_path
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.CompanyName, &r.SourceDir,
			&r.OutputDir, &r.Recursive, &r.KeyField, &r.Status, &r.ErrorMessage,
			&r.FilesProcessed, &r.FilesFailed, &r.TotalRecords,
			&r.DuplicateGroups, &r.ExtraOccurrences, &r.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRunByID returns one run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, company_name, source_dir, output_dir, recursive,
			key_field, status, error_message, files_processed, files_failed,
			total_records, duplicate_groups, extra_occurrences, output_path
		FROM runs
		WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.CreatedAt, &r.CompanyName, &r.SourceDir,
			&r.OutputDir, &r.Recursive, &r.KeyField, &r.Status, &r.ErrorMessage,
			&r.FilesProcessed, &r.FilesFailed, &r.TotalRecords,
			&r.DuplicateGroups, &r.ExtraOccurrences, &r.OutputPath)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetLatestRunID returns the most recent run's ID.
func (db *DB) GetLatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow(`SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs recorded yet")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// GetRunFailures returns the failed files recorded for a run.
func (db *DB) GetRunFailures(runID int64) ([]RunFailure, error) {
	rows, err := db.Query(`
		SELECT failure_id, run_id, file_name, error_message
		FROM run_failures
		WHERE run_id = ?
		ORDER BY failure_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run failures: %w", err)
	}
	defer rows.Close()

	var failures []RunFailure
	for rows.Next() {
		var f RunFailure
		if err := rows.Scan(&f.FailureID, &f.RunID, &f.FileName, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan run failure: %w", err)
		}
		failures = append(failures, f)
	}

	return failures, rows.Err()
}

func keyFieldOf(cfg models.RunConfig) string {
	if cfg.KeyField == "" {
		return models.DefaultKeyField
	}
	return cfg.KeyField
}
