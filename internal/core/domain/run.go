package domain

import "time"

type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
	RunCanceled  RunStatus = "canceled"
)

// ScanParams configures one traversal.
type ScanParams struct {
	Directory         string `json:"directory"`
	Recursive         bool   `json:"recursive"`
	SearchInName      bool   `json:"search_in_name"`
	SearchInContent   bool   `json:"search_in_content"`
	AppendOriginal    bool   `json:"append_original"`
	OriginalPrefixLen int    `json:"original_prefix_len"`
}

// ScanSummary tallies traversal outcomes. Skipped counts lock/temp files
// that never made it into the record table.
type ScanSummary struct {
	Total      int `json:"total"`
	Classified int `json:"classified"`
	Unknown    int `json:"unknown"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// ScanResult is the complete outcome of one traversal.
type ScanResult struct {
	Records []FileRecord `json:"records"`
	Summary ScanSummary  `json:"summary"`
}

// Run is one traversal tracked by the run registry.
type Run struct {
	ID         string       `json:"id"`
	Status     RunStatus    `json:"status"`
	Params     ScanParams   `json:"params"`
	Done       int          `json:"done"`
	Total      int          `json:"total"`
	Records    []FileRecord `json:"records,omitempty"`
	Summary    ScanSummary  `json:"summary"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at,omitzero"`
}
