// Package duplicates counts records sharing the same identifier value.
package duplicates

import (
	"strings"

	"hashmerge/models"
)

// Detect groups records by the value under keyField and counts groups
// of two or more. Records missing the field, or whose value is blank
// after trimming, are excluded from grouping entirely. The report is
// informational; no record is removed or flagged.
func Detect(records []models.Record, keyField string) models.DuplicateReport {
	report := models.DuplicateReport{KeyField: keyField}

	counts := make(map[string]int)
	for _, record := range records {
		value := record[keyField]
		if strings.TrimSpace(value) == "" {
			continue
		}
		// Grouping is on the raw value; trimming applies only to the
		// blank check above.
		counts[value]++
	}

	for _, n := range counts {
		if n >= 2 {
			report.DuplicateGroups++
			report.ExtraOccurrences += n - 1
		}
	}

	return report
}
