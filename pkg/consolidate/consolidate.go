// Package consolidate drives ingestion across located files and
// accumulates their records.
package consolidate

import (
	"hashmerge/models"
)

// Ingester parses one located file into records.
type Ingester interface {
	Ingest(entry models.FileEntry) models.IngestResult
}

// ProgressFunc receives one notification per file as ingestion
// proceeds. Rendering belongs to the caller; the pipeline only reports
// the display name, 1-based index, and total.
type ProgressFunc func(name string, index, total int)

// Consolidator accumulates records from many files, one at a time, in
// the order given. A failing file is counted and skipped; it never
// stops the run.
type Consolidator struct {
	ingester Ingester
	progress ProgressFunc
}

// New creates a Consolidator. progress may be nil.
func New(ingester Ingester, progress ProgressFunc) *Consolidator {
	return &Consolidator{ingester: ingester, progress: progress}
}

// Consolidate ingests every entry in order and returns the accumulated
// records, the union of column lists in first-seen order, and the
// per-file success/failure tallies. An empty entries slice yields an
// empty result with zero counts.
func (c *Consolidator) Consolidate(entries []models.FileEntry) models.ConsolidationResult {
	var result models.ConsolidationResult
	seen := make(map[string]bool)

	for i, entry := range entries {
		if c.progress != nil {
			c.progress(entry.DisplayName, i+1, len(entries))
		}

		ingested := c.ingester.Ingest(entry)
		if !ingested.OK() {
			result.Failed++
			result.Failures = append(result.Failures, models.FileFailure{
				File:    entry.DisplayName,
				Message: ingested.Err.Error(),
			})
			continue
		}

		result.Processed++
		if len(ingested.Records) == 0 {
			// Header-only files count as processed but contribute no
			// records, so their columns stay out of the output header.
			continue
		}
		for _, col := range ingested.Columns {
			if !seen[col] {
				seen[col] = true
				result.Columns = append(result.Columns, col)
			}
		}
		result.Records = append(result.Records, ingested.Records...)
	}

	result.TotalRecords = len(result.Records)
	return result
}
