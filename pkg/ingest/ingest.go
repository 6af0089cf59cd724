// Package ingest parses one CSV export into records, isolating
// failures to that file.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"hashmerge/models"
	"hashmerge/pkg/storage"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader parses delimited-text exports. The first line is the header;
// each later line becomes one record keyed by the header columns.
type Reader struct {
	store storage.Storage
}

// Ingest parses one located file. Failures (unreadable file, no header
// line, malformed CSV) are returned inside the result, never as an
// error that could abort the surrounding run. A file containing only a
// header yields an empty success.
func (r Reader) Ingest(entry models.FileEntry) models.IngestResult {
	result := models.IngestResult{File: entry}

	data, err := r.store.ReadFile(entry.Path)
	if err != nil {
		result.Err = fmt.Errorf("cannot read file: %w", err)
		return result
	}

	// Provisioning utilities on Windows prefix a UTF-8 byte order mark
	// so Excel opens the export cleanly.
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	// Exports from different utility versions disagree on trailing
	// columns; row width is reconciled against the header instead.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		result.Err = errors.New("file is empty")
		return result
	}
	if err != nil {
		result.Err = fmt.Errorf("cannot parse header row: %w", err)
		return result
	}
	result.Columns = header

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Whole-file fault isolation: discard partial records.
			return models.IngestResult{
				File: entry,
				Err:  fmt.Errorf("malformed CSV content: %w", err),
			}
		}

		record := make(models.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		result.Records = append(result.Records, record)
	}

	return result
}
