package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
)

// ScanUseCase runs one directory traversal: discovery, classification,
// naming, sibling propagation and the outcome tally.
type ScanUseCase struct {
	catalog   ports.CatalogProvider
	extractor ports.ContentExtractor
	logger    *slog.Logger
}

func NewScanUseCase(catalog ports.CatalogProvider, extractor ports.ContentExtractor, logger *slog.Logger) *ScanUseCase {
	return &ScanUseCase{catalog: catalog, extractor: extractor, logger: logger}
}

func (uc *ScanUseCase) Scan(ctx context.Context, params domain.ScanParams, progress ports.ProgressFunc) (*domain.ScanResult, error) {
	if err := ValidateScanDirectory(params.Directory); err != nil {
		return nil, err
	}

	catalog, err := uc.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot catalog: %w", err)
	}

	entries, skipped, err := discover(params.Directory, params.Recursive)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}

	cls := newClassifier(catalog, uc.logger)
	nm := newNamer(params, uc.logger)

	result := &domain.ScanResult{
		Records: make([]domain.FileRecord, 0, len(entries)),
		Summary: domain.ScanSummary{Total: len(entries), Skipped: skipped},
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Records = append(result.Records, uc.processOne(ctx, cls, nm, entry, params))
		if progress != nil {
			progress(i+1, len(entries))
		}
	}

	propagate(result.Records)
	tally(&result.Summary, result.Records)

	uc.logger.Info("scan complete",
		"directory", params.Directory,
		"files", result.Summary.Total,
		"classified", result.Summary.Classified,
		"unknown", result.Summary.Unknown,
		"failed", result.Summary.Failed,
	)
	return result, nil
}

// ValidateScanDirectory rejects traversal roots that cannot be scanned.
func ValidateScanDirectory(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "scan directory", errors.New("directory is blank"))
	}
	info, err := os.Stat(dir)
	if err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "scan directory", err)
	}
	if !info.IsDir() {
		return domain.WrapError(domain.ErrInvalidInput, "scan directory", fmt.Errorf("%q is not a directory", dir))
	}
	return nil
}

// fileEntry is one discovered file plus what sibling detection derived.
type fileEntry struct {
	path            string
	hasSheetSibling bool
}

// discover lists candidate files in deterministic lexical order, leaving out
// Office lock/temp files. PDFs that share directory and stem with a
// spreadsheet are marked: the spreadsheet is authoritative for them.
func discover(root string, recursive bool) ([]fileEntry, int, error) {
	var paths []string
	skipped := 0

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasPrefix(d.Name(), domain.LockNamePrefix) {
				skipped++
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
	} else {
		dirents, err := os.ReadDir(root)
		if err != nil {
			return nil, 0, err
		}
		for _, d := range dirents {
			if d.IsDir() {
				continue
			}
			if strings.HasPrefix(d.Name(), domain.LockNamePrefix) {
				skipped++
				continue
			}
			paths = append(paths, filepath.Join(root, d.Name()))
		}
	}
	sort.Strings(paths)

	sheetStems := make(map[string]bool, len(paths))
	for _, p := range paths {
		if domain.SpreadsheetExtension(filepath.Ext(p)) {
			sheetStems[stemKey(p)] = true
		}
	}

	entries := make([]fileEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, fileEntry{
			path:            p,
			hasSheetSibling: strings.EqualFold(filepath.Ext(p), ".pdf") && sheetStems[stemKey(p)],
		})
	}
	return entries, skipped, nil
}

func stemKey(path string) string {
	base := filepath.Base(path)
	return filepath.Join(filepath.Dir(path), strings.TrimSuffix(base, filepath.Ext(base)))
}

// processOne builds the record for a single file. A panic during extraction
// or matching degrades to a failed record instead of killing the traversal.
func (uc *ScanUseCase) processOne(ctx context.Context, cls *classifier, nm *namer, entry fileEntry, params domain.ScanParams) (rec domain.FileRecord) {
	rec = domain.NewFileRecord(entry.path)
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("file processing panicked", "path", entry.path, "panic", r)
			rec = domain.NewFileRecord(entry.path)
			rec.Error = fmt.Sprint(r)
		}
	}()

	if entry.hasSheetSibling {
		uc.logger.Debug("pdf deferred to spreadsheet sibling", "path", entry.path)
		return rec
	}

	content := uc.contentOnce(ctx, rec)

	dt, found := cls.classify(rec.OriginalName, content, params.SearchInName, params.SearchInContent)
	if !found {
		return rec
	}
	rec.TypeID = dt.ID
	rec.DisplayType = dt.DisplayName
	rec.Mask = dt.Mask
	nm.synthesize(dt, &rec, content)
	return rec
}

// contentOnce wraps extraction so it runs at most once per file; extraction
// failures degrade to empty content and never fail the record.
func (uc *ScanUseCase) contentOnce(ctx context.Context, rec domain.FileRecord) func() domain.Content {
	var (
		cached domain.Content
		done   bool
	)
	return func() domain.Content {
		if done {
			return cached
		}
		done = true
		if !domain.ExtractableExtension(rec.Extension) {
			return cached
		}
		content, err := uc.extractor.Extract(ctx, rec.SourcePath)
		if err != nil {
			uc.logger.Warn("content extraction failed, treating as empty",
				"path", rec.SourcePath,
				"error", err,
			)
			return cached
		}
		cached = content
		return cached
	}
}

// propagate copies every spreadsheet's classification onto records that
// share its directory and stem under another extension. Records are visited
// in sorted path order, so stems with several spreadsheet versions resolve
// deterministically.
func propagate(records []domain.FileRecord) {
	for i := range records {
		src := &records[i]
		if !domain.SpreadsheetExtension(src.Extension) {
			continue
		}
		for j := range records {
			dst := &records[j]
			if i == j || dst.Extension == src.Extension {
				continue
			}
			if dst.Directory() != src.Directory() || dst.Stem() != src.Stem() {
				continue
			}
			dst.TypeID = src.TypeID
			dst.DisplayType = src.DisplayType
			dst.Mask = src.Mask
			dst.ProposedName = src.ProposedName
			dst.EstimateNumber = src.EstimateNumber
		}
	}
}

func tally(sum *domain.ScanSummary, records []domain.FileRecord) {
	for _, rec := range records {
		switch {
		case rec.Error != "":
			sum.Failed++
		case rec.Classified():
			sum.Classified++
		default:
			sum.Unknown++
		}
	}
}
