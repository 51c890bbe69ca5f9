package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// Extractor reads the classified worksheet of .xlsx and legacy .xls files.
// Only one sheet is read: estimate workbooks put their title block on the
// first visible sheet, and scanning every sheet of a large workbook is
// wasted work.
type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, path string) (domain.Content, error) {
	if err := ctx.Err(); err != nil {
		return domain.Content{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return e.readXLSX(path)
	case ".xls":
		return e.readXLS(path)
	default:
		return domain.Content{}, fmt.Errorf("workbook: unsupported extension %q", filepath.Ext(path))
	}
}

func (e *Extractor) readXLSX(path string) (domain.Content, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Content{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("closing workbook failed", "path", path, "error", err)
		}
	}()

	sheet := chooseSheet(f.GetSheetList(), func(name string) bool {
		visible, err := f.GetSheetVisible(name)
		return err == nil && visible
	})
	if sheet == "" {
		return domain.Content{}, nil
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return domain.Content{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	rows := make([]string, 0, len(grid))
	for _, cells := range grid {
		if line := flattenRow(cells); line != "" {
			rows = append(rows, line)
		}
	}
	return domain.Content{Rows: rows}, nil
}

func (e *Extractor) readXLS(path string) (domain.Content, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return domain.Content{}, fmt.Errorf("open workbook: %w", err)
	}

	names := make([]string, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		if sheet := wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	// The legacy reader exposes no visibility flag, so only the name
	// heuristic applies.
	target := chooseSheet(names, func(string) bool { return false })
	if target == "" {
		return domain.Content{}, nil
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil || sheet.Name != target {
			continue
		}
		return domain.Content{Rows: readSheetRows(sheet)}, nil
	}
	return domain.Content{}, nil
}

func readSheetRows(sheet *xls.WorkSheet) []string {
	rows := make([]string, 0, int(sheet.MaxRow)+1)
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			continue
		}
		cells := make([]string, 0, row.LastCol()-row.FirstCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		if line := flattenRow(cells); line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// chooseSheet picks the sheet worth reading: the first visible one, then the
// first one whose name does not look technical. When neither exists nothing
// is read and the caller reports empty content.
func chooseSheet(names []string, visible func(string) bool) string {
	for _, name := range names {
		if visible(name) {
			return name
		}
	}
	for _, name := range names {
		if !strings.HasPrefix(name, "_") {
			return name
		}
	}
	return ""
}

// flattenRow merges the cells of one row into a single lowercased line with
// normalized spacing, so tag matching does not depend on which cell a word
// landed in.
func flattenRow(cells []string) string {
	line := strings.Join(strings.Fields(strings.Join(cells, " ")), " ")
	return strings.ToLower(line)
}
