package domain

import (
	"path/filepath"
	"strings"
)

// Unknown marks unresolved display types, proposed names and name fragments.
const Unknown = "?"

// FileRecord is the traversal outcome for one discovered file.
type FileRecord struct {
	SourcePath     string `json:"source_path"`
	OriginalName   string `json:"original_name"`
	Extension      string `json:"extension"`
	TypeID         string `json:"type_id,omitempty"`
	DisplayType    string `json:"display_type"`
	Mask           string `json:"mask,omitempty"`
	EstimateNumber string `json:"estimate_number,omitempty"`
	ProposedName   string `json:"proposed_name"`
	Error          string `json:"error,omitempty"`
}

func NewFileRecord(path string) FileRecord {
	name := filepath.Base(path)
	return FileRecord{
		SourcePath:   path,
		OriginalName: name,
		Extension:    strings.ToLower(filepath.Ext(name)),
		DisplayType:  Unknown,
		ProposedName: Unknown,
	}
}

// Stem is the original filename without its extension.
func (r FileRecord) Stem() string {
	return strings.TrimSuffix(r.OriginalName, filepath.Ext(r.OriginalName))
}

func (r FileRecord) Directory() string {
	return filepath.Dir(r.SourcePath)
}

// ProposedFilename is the proposed base name with the original extension.
func (r FileRecord) ProposedFilename() string {
	return r.ProposedName + r.Extension
}

func (r FileRecord) Classified() bool {
	return r.DisplayType != Unknown
}

// ExtractableExtension reports whether content extraction is supported for
// the extension. Extensions are compared lowercased with the leading dot.
func ExtractableExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".xls", ".xlsx":
		return true
	default:
		return false
	}
}

func SpreadsheetExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".xls", ".xlsx":
		return true
	default:
		return false
	}
}

// Content is what extraction produced for one document: a page of text for
// PDFs or the row grid of one worksheet for workbooks. Both are lowercased
// by the extractors.
type Content struct {
	Text string   `json:"text,omitempty"`
	Rows []string `json:"rows,omitempty"`
}

func (c Content) Empty() bool {
	return strings.TrimSpace(c.Text) == "" && len(c.Rows) == 0
}

// Lines returns up to limit content lines; limit <= 0 returns all of them.
func (c Content) Lines(limit int) []string {
	lines := c.Rows
	if len(lines) == 0 && strings.TrimSpace(c.Text) != "" {
		lines = strings.Split(c.Text, "\n")
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return lines
}
