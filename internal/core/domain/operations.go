package domain

import "strings"

// OperationMode selects what applying a proposed name does to the file.
type OperationMode string

const (
	ModeRename     OperationMode = "rename"
	ModeCopy       OperationMode = "copy"
	ModeCopySubdir OperationMode = "subfolder"
)

func ParseOperationMode(s string) (OperationMode, bool) {
	switch OperationMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRename:
		return ModeRename, true
	case ModeCopy:
		return ModeCopy, true
	case ModeCopySubdir:
		return ModeCopySubdir, true
	default:
		return "", false
	}
}

// OverwritePolicy decides what happens when the destination already exists.
type OverwritePolicy string

const (
	OverwriteSkip    OverwritePolicy = "skip"
	OverwriteReplace OverwritePolicy = "replace"
)

// ApplyItem is one row of an apply request: the record it addresses, the
// final filename with extension, and whether the user selected it.
type ApplyItem struct {
	SourcePath string `json:"source_path"`
	Name       string `json:"name"`
	Selected   bool   `json:"selected"`
}

type ApplyRequest struct {
	Mode      OperationMode   `json:"mode"`
	TargetDir string          `json:"target_dir,omitempty"`
	Subfolder string          `json:"subfolder,omitempty"`
	Overwrite OverwritePolicy `json:"overwrite,omitempty"`
	Items     []ApplyItem     `json:"items"`
}

type OperationOutcome string

const (
	OutcomeSucceeded OperationOutcome = "succeeded"
	OutcomeFailed    OperationOutcome = "failed"
	OutcomeSkipped   OperationOutcome = "skipped"
)

// OperationResult reports what happened to one apply item.
type OperationResult struct {
	SourcePath string           `json:"source_path"`
	TargetPath string           `json:"target_path,omitempty"`
	Outcome    OperationOutcome `json:"outcome"`
	Reason     string           `json:"reason,omitempty"`
}

// ApplyResult tallies an apply batch. The batch never aborts midway: every
// item lands in exactly one of the three buckets.
type ApplyResult struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
	Results   []OperationResult `json:"results"`
}

// NameCheck is the validator's verdict for one candidate name.
type NameCheck struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
