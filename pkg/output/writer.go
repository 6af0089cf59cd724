// Package output serializes accumulated records to the consolidated
// CSV file with a deterministic name.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"hashmerge/models"
	"hashmerge/pkg/storage"
)

const filenameSuffix = "ConsolidatedHardwareHashes"

// timestampLayout yields yyyy-MM-dd_HHmm. Two runs within the same
// minute produce the same filename and the later one overwrites; an
// accepted limitation.
const timestampLayout = "2006-01-02_1504"

var (
	// Letters and digits in any script survive; company names are not
	// ASCII-only.
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}\s_-]+`)
	whitespaceChar  = regexp.MustCompile(`\s`)
)

// SanitizeLabel strips every character that is not alphanumeric,
// whitespace, underscore, or hyphen, then turns each remaining
// whitespace character into an underscore. "Acme & Sons, Inc." becomes
// "Acme__Sons_Inc".
func SanitizeLabel(label string) string {
	cleaned := disallowedChars.ReplaceAllString(label, "")
	return whitespaceChar.ReplaceAllString(cleaned, "_")
}

// Filename composes the consolidated output filename for a label and
// timestamp.
func Filename(label string, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", SanitizeLabel(label), filenameSuffix, ts.Format(timestampLayout))
}

// Writer serializes records into the output directory.
type Writer struct {
	store storage.Storage
}

// Write serializes the records under the given column order into
// outputDir. Records missing a column get an empty field. The file is
// UTF-8 with a leading BOM so Excel and the enrollment importer read
// it without prompting. I/O failures are terminal write_failure errors.
func (w *Writer) Write(records []models.Record, columns []string, label, outputDir string, ts time.Time) (*models.OutputDescriptor, error) {
	path := filepath.Join(outputDir, Filename(label, ts))

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(&buf)
	if err := cw.Write(columns); err != nil {
		return nil, models.WrapRunError(models.ErrWriteFailure, err, "failed to serialize header row")
	}

	row := make([]string, len(columns))
	for _, record := range records {
		for i, col := range columns {
			row[i] = record[col]
		}
		if err := cw.Write(row); err != nil {
			return nil, models.WrapRunError(models.ErrWriteFailure, err, "failed to serialize record")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, models.WrapRunError(models.ErrWriteFailure, err, "failed to serialize records")
	}

	// Same-minute runs share a filename; the overwrite is surfaced to
	// the caller as a warning, not prevented.
	replaced := w.store.HasFile(path)

	if err := w.store.SaveFile(path, buf.Bytes()); err != nil {
		return nil, models.WrapRunError(models.ErrWriteFailure, err, "failed to write output file: %s", path)
	}

	size := int64(buf.Len())
	if stats, err := w.store.GetFileStats(path); err == nil {
		size = stats.SizeBytes
	}

	return &models.OutputDescriptor{
		Path:      path,
		SizeBytes: size,
		Replaced:  replaced,
	}, nil
}
