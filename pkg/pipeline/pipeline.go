// Package pipeline sequences one consolidation run: locate files,
// ingest and accumulate, count duplicates, write the output file.
package pipeline

import (
	"os"
	"time"

	"hashmerge/models"
	"hashmerge/pkg/consolidate"
	"hashmerge/pkg/duplicates"
	"hashmerge/pkg/ingest"
	"hashmerge/pkg/locator"
	"hashmerge/pkg/output"
)

// Runner executes consolidation runs. Now supplies the output
// timestamp and defaults to time.Now.
type Runner struct {
	Now func() time.Time
}

func New() *Runner {
	return &Runner{Now: time.Now}
}

// Run executes one consolidation end to end. Per-file ingestion
// failures are carried in the result; only directory validation,
// the no-files / no-data cases, and the final write are terminal.
func (r *Runner) Run(cfg models.RunConfig, progress consolidate.ProgressFunc) (*models.RunResult, error) {
	if err := requireDir(cfg.SourceDir, "source"); err != nil {
		return nil, err
	}
	if err := requireDir(cfg.OutputDir, "output"); err != nil {
		return nil, err
	}

	entries, err := locator.Locate(cfg.SourceDir, cfg.Recursive)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, models.NewRunError(models.ErrNoFilesFound, "no CSV files found in %s", cfg.SourceDir)
	}

	consolidated := consolidate.New(ingest.Reader{}, progress).Consolidate(entries)
	if consolidated.TotalRecords == 0 {
		// Files existed but yielded nothing usable; distinct from the
		// empty-directory case above.
		return nil, models.NewRunError(models.ErrNoValidData,
			"no valid data in %d located file(s): %d failed, %d empty",
			len(entries), consolidated.Failed, consolidated.Processed)
	}

	keyField := cfg.KeyField
	if keyField == "" {
		keyField = models.DefaultKeyField
	}
	report := duplicates.Detect(consolidated.Records, keyField)

	writer := &output.Writer{}
	descriptor, err := writer.Write(consolidated.Records, consolidated.Columns, cfg.CompanyName, cfg.OutputDir, r.Now())
	if err != nil {
		return nil, err
	}

	return &models.RunResult{
		FilesProcessed: consolidated.Processed,
		FilesFailed:    consolidated.Failed,
		TotalRecords:   consolidated.TotalRecords,
		Failures:       consolidated.Failures,
		Duplicates:     report,
		OutputPath:     descriptor.Path,
		OutputBytes:    descriptor.SizeBytes,
		ReplacedOutput: descriptor.Replaced,
	}, nil
}

func requireDir(path, role string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return models.NewRunError(models.ErrInvalidDirectory, "%s directory does not exist: %s", role, path)
	}
	return nil
}
