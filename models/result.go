package models

// Record is one parsed row of tabular input, keyed by header column name.
// Column order is not carried here; batches track their own ordered
// column lists so output headers stay deterministic.
type Record map[string]string

// FileEntry is a located candidate input file.
type FileEntry struct {
	// Path is the absolute (or caller-rooted) path used for reading.
	Path string
	// DisplayName is the name shown to the user: relative to the source
	// root when scanning recursively, else the bare filename.
	DisplayName string
}

// IngestResult is the outcome of parsing one file. Err is nil on
// success; a header-only file is an empty success, not a failure.
type IngestResult struct {
	File    FileEntry
	Columns []string
	Records []Record
	Err     error
}

// OK reports whether the file was ingested successfully.
func (r IngestResult) OK() bool {
	return r.Err == nil
}

// FileFailure records one file that could not be ingested.
type FileFailure struct {
	File    string `json:"file" yaml:"file"`
	Message string `json:"message" yaml:"message"`
}

// ConsolidationResult aggregates one run's accumulated records.
// Records keep insertion order: file discovery order, then row order
// within each file.
type ConsolidationResult struct {
	Records []Record
	// Columns is the union of all ingested files' column lists in
	// first-seen order.
	Columns      []string
	Processed    int
	Failed       int
	TotalRecords int
	Failures     []FileFailure
}

// DuplicateReport counts duplicate key groups. Informational only;
// no record is ever dropped because of it.
type DuplicateReport struct {
	KeyField         string `json:"key_field" yaml:"key_field"`
	DuplicateGroups  int    `json:"duplicate_groups" yaml:"duplicate_groups"`
	ExtraOccurrences int    `json:"extra_occurrences" yaml:"extra_occurrences"`
}

// OutputDescriptor describes the written consolidated file.
type OutputDescriptor struct {
	Path      string
	SizeBytes int64
	// Replaced reports that a file with the same name already existed
	// (two runs within the same minute collide and overwrite).
	Replaced bool
}

// RunResult is the success payload of one consolidation run.
type RunResult struct {
	FilesProcessed int             `json:"files_processed" yaml:"files_processed"`
	FilesFailed    int             `json:"files_failed" yaml:"files_failed"`
	TotalRecords   int             `json:"total_records" yaml:"total_records"`
	Failures       []FileFailure   `json:"failures,omitempty" yaml:"failures,omitempty"`
	Duplicates     DuplicateReport `json:"duplicates" yaml:"duplicates"`
	OutputPath     string          `json:"output_path" yaml:"output_path"`
	OutputBytes    int64           `json:"output_bytes" yaml:"output_bytes"`
	ReplacedOutput bool            `json:"replaced_output,omitempty" yaml:"replaced_output,omitempty"`
}
