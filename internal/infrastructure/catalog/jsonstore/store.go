package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// entry is the on-disk shape of one taxonomy type. The file is a JSON object
// keyed by type id, which keeps hand edits and diffs readable.
type entry struct {
	DisplayName string   `json:"type"`
	NameTags    []string `json:"name_tags"`
	ContentTags []string `json:"internal_tags"`
	Mask        string   `json:"mask"`
}

// Store keeps the editable type taxonomy in a single JSON file.
type Store struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = "./data/file_types.json"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the taxonomy from disk. A missing file is seeded with the
// built-in defaults. An unparsable file also falls back to the defaults
// instead of failing the caller, so one broken hand edit never takes the
// whole service down.
func (s *Store) Load(ctx context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		defaults := domain.DefaultCatalog()
		if err := s.Save(ctx, defaults); err != nil {
			return nil, fmt.Errorf("seed catalog file: %w", err)
		}
		s.logger.Info("catalog file missing, seeded defaults", "path", s.path, "types", len(defaults))
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Error("catalog file is not valid JSON, using defaults", "path", s.path, "error", err)
		return domain.DefaultCatalog(), nil
	}

	catalog := make(domain.Catalog, 0, len(entries))
	for id, e := range entries {
		catalog = append(catalog, domain.DocumentType{
			ID:          id,
			DisplayName: e.DisplayName,
			NameTags:    e.NameTags,
			ContentTags: e.ContentTags,
			Mask:        e.Mask,
		})
	}
	catalog.Sort()
	return catalog, nil
}

// Save writes the whole taxonomy atomically: marshal into a temp file next
// to the target, then rename over it.
func (s *Store) Save(_ context.Context, catalog domain.Catalog) error {
	entries := make(map[string]entry, len(catalog))
	for _, t := range catalog {
		entries[t.ID] = entry{
			DisplayName: t.DisplayName,
			NameTags:    t.NameTags,
			ContentTags: t.ContentTags,
			Mask:        t.Mask,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".file_types-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close catalog file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}
