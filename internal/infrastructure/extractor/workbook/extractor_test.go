package workbook

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeXLSX(t *testing.T, build func(f *excelize.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	if err := build(f); err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

func TestExtractReadsFirstVisibleSheet(t *testing.T) {
	path := writeXLSX(t, func(f *excelize.File) error {
		if err := f.SetSheetName("Sheet1", "Черновик"); err != nil {
			return err
		}
		if _, err := f.NewSheet("Реестр"); err != nil {
			return err
		}
		if err := f.SetCellValue("Черновик", "A1", "не этот лист"); err != nil {
			return err
		}
		if err := f.SetCellValue("Реестр", "A1", "Сводный РЕЕСТР сметной документации"); err != nil {
			return err
		}
		return f.SetSheetVisible("Черновик", false)
	})

	content, err := New(testLogger()).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(content.Rows) != 1 {
		t.Fatalf("expected 1 row, got %v", content.Rows)
	}
	if content.Rows[0] != "сводный реестр сметной документации" {
		t.Fatalf("expected lowercased row from the visible sheet, got %q", content.Rows[0])
	}
}

func TestExtractVisibilityBeatsSheetName(t *testing.T) {
	path := writeXLSX(t, func(f *excelize.File) error {
		if err := f.SetSheetName("Sheet1", "_титул"); err != nil {
			return err
		}
		if _, err := f.NewSheet("Смета"); err != nil {
			return err
		}
		if err := f.SetCellValue("_титул", "A1", "Сводный сметный расчет"); err != nil {
			return err
		}
		return f.SetCellValue("Смета", "A1", "локальный сметный расчет")
	})

	content, err := New(testLogger()).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(content.Rows) != 1 || content.Rows[0] != "сводный сметный расчет" {
		t.Fatalf("expected the first visible sheet to win regardless of its name, got %v", content.Rows)
	}
}

func TestExtractJoinsCellsAndDropsBlankRows(t *testing.T) {
	path := writeXLSX(t, func(f *excelize.File) error {
		if err := f.SetCellValue("Sheet1", "A1", "Локальная"); err != nil {
			return err
		}
		if err := f.SetCellValue("Sheet1", "C1", "смета"); err != nil {
			return err
		}
		return f.SetCellValue("Sheet1", "A3", "№ 02-01-04")
	})

	content, err := New(testLogger()).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []string{"локальная смета", "№ 02-01-04"}
	if len(content.Rows) != len(want) {
		t.Fatalf("expected %v, got %v", want, content.Rows)
	}
	for i := range want {
		if content.Rows[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], content.Rows[i])
		}
	}
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	_, err := New(testLogger()).Extract(context.Background(), "estimate.docx")
	if err == nil {
		t.Fatalf("expected an error for an unsupported extension")
	}
}

func TestExtractFailsOnBrokenLegacyWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xls")
	if err := os.WriteFile(path, []byte("definitely not a compound file"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := New(testLogger()).Extract(context.Background(), path); err == nil {
		t.Fatalf("expected an error for a broken workbook")
	}
}

func TestChooseSheet(t *testing.T) {
	all := func(string) bool { return true }
	none := func(string) bool { return false }
	cases := []struct {
		name    string
		names   []string
		visible func(string) bool
		want    string
	}{
		{"empty", nil, all, ""},
		{"single", []string{"Смета"}, all, "Смета"},
		{"skips hidden", []string{"Скрытый", "Реестр"}, func(n string) bool { return n != "Скрытый" }, "Реестр"},
		{"visible technical sheet still wins", []string{"_кэш", "Смета"}, all, "_кэш"},
		{"all hidden falls back past underscore names", []string{"_кэш", "Смета"}, none, "Смета"},
		{"all hidden falls back to first plain name", []string{"Один", "Два"}, none, "Один"},
		{"nothing qualifies", []string{"_один", "_два"}, none, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := chooseSheet(tc.names, tc.visible); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
