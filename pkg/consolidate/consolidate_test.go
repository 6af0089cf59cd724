package consolidate

import (
	"errors"
	"fmt"
	"testing"

	"hashmerge/models"
)

// fakeIngester returns canned results keyed by display name.
type fakeIngester struct {
	results map[string]models.IngestResult
}

func (f fakeIngester) Ingest(entry models.FileEntry) models.IngestResult {
	result, ok := f.results[entry.DisplayName]
	if !ok {
		return models.IngestResult{File: entry, Err: errors.New("unexpected file")}
	}
	result.File = entry
	return result
}

func entriesNamed(names ...string) []models.FileEntry {
	entries := make([]models.FileEntry, len(names))
	for i, name := range names {
		entries[i] = models.FileEntry{Path: "/src/" + name, DisplayName: name}
	}
	return entries
}

func recordsFor(col string, values ...string) []models.Record {
	records := make([]models.Record, len(values))
	for i, v := range values {
		records[i] = models.Record{col: v}
	}
	return records
}

func TestConsolidate_OrderPreserved(t *testing.T) {
	ingester := fakeIngester{results: map[string]models.IngestResult{
		"a.csv": {Columns: []string{"Serial"}, Records: recordsFor("Serial", "A1", "A2")},
		"b.csv": {Columns: []string{"Serial"}, Records: recordsFor("Serial", "B1")},
		"c.csv": {Columns: []string{"Serial"}, Records: recordsFor("Serial", "C1", "C2")},
	}}

	result := New(ingester, nil).Consolidate(entriesNamed("a.csv", "b.csv", "c.csv"))

	want := []string{"A1", "A2", "B1", "C1", "C2"}
	if result.TotalRecords != len(want) {
		t.Fatalf("TotalRecords = %d, want %d", result.TotalRecords, len(want))
	}
	for i, w := range want {
		if got := result.Records[i]["Serial"]; got != w {
			t.Errorf("Records[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestConsolidate_FaultIsolation(t *testing.T) {
	ingester := fakeIngester{results: map[string]models.IngestResult{
		"good1.csv":   {Columns: []string{"Serial"}, Records: recordsFor("Serial", "G1")},
		"corrupt.csv": {Err: errors.New("cannot parse header row")},
		"good2.csv":   {Columns: []string{"Serial"}, Records: recordsFor("Serial", "G2")},
	}}

	result := New(ingester, nil).Consolidate(entriesNamed("good1.csv", "corrupt.csv", "good2.csv"))

	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if result.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d, want 2", result.TotalRecords)
	}
	if len(result.Failures) != 1 || result.Failures[0].File != "corrupt.csv" {
		t.Fatalf("Failures = %v, want one entry for corrupt.csv", result.Failures)
	}
	if result.Records[0]["Serial"] != "G1" || result.Records[1]["Serial"] != "G2" {
		t.Errorf("Records = %v, want G1 then G2", result.Records)
	}
}

func TestConsolidate_ColumnUnionFirstSeen(t *testing.T) {
	ingester := fakeIngester{results: map[string]models.IngestResult{
		"one.csv": {Columns: []string{"A", "B"}, Records: []models.Record{{"A": "1", "B": "2"}}},
		"two.csv": {Columns: []string{"B", "C"}, Records: []models.Record{{"B": "3", "C": "4"}}},
	}}

	result := New(ingester, nil).Consolidate(entriesNamed("one.csv", "two.csv"))

	want := []string{"A", "B", "C"}
	if len(result.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", result.Columns, want)
	}
	for i, w := range want {
		if result.Columns[i] != w {
			t.Errorf("Columns[%d] = %q, want %q", i, result.Columns[i], w)
		}
	}
}

func TestConsolidate_HeaderOnlyColumnsExcluded(t *testing.T) {
	ingester := fakeIngester{results: map[string]models.IngestResult{
		"headeronly.csv": {Columns: []string{"A", "B"}},
		"data.csv":       {Columns: []string{"B", "C"}, Records: []models.Record{{"B": "1", "C": "2"}}},
	}}

	result := New(ingester, nil).Consolidate(entriesNamed("headeronly.csv", "data.csv"))

	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2 (header-only file still succeeds)", result.Processed)
	}

	// Only files that contributed records shape the output header
	want := []string{"B", "C"}
	if len(result.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", result.Columns, want)
	}
	for i, w := range want {
		if result.Columns[i] != w {
			t.Errorf("Columns[%d] = %q, want %q", i, result.Columns[i], w)
		}
	}
}

func TestConsolidate_ProgressNotifications(t *testing.T) {
	ingester := fakeIngester{results: map[string]models.IngestResult{
		"a.csv": {Columns: []string{"A"}},
		"b.csv": {Err: errors.New("boom")},
	}}

	var calls []string
	progress := func(name string, index, total int) {
		calls = append(calls, fmt.Sprintf("%s %d/%d", name, index, total))
	}

	New(ingester, progress).Consolidate(entriesNamed("a.csv", "b.csv"))

	want := []string{"a.csv 1/2", "b.csv 2/2"}
	if len(calls) != len(want) {
		t.Fatalf("progress calls = %v, want %v", calls, want)
	}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], w)
		}
	}
}

func TestConsolidate_EmptyInput(t *testing.T) {
	result := New(fakeIngester{}, nil).Consolidate(nil)

	if result.Processed != 0 || result.Failed != 0 || result.TotalRecords != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero",
			result.Processed, result.Failed, result.TotalRecords)
	}
}
