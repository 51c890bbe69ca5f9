package extractor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/observability/metrics"
)

type extractorFake struct {
	content domain.Content
	err     error
	paths   []string
}

func (f *extractorFake) Extract(_ context.Context, path string) (domain.Content, error) {
	f.paths = append(f.paths, path)
	return f.content, f.err
}

func TestDispatcherRoutesByExtension(t *testing.T) {
	workbook := &extractorFake{content: domain.Content{Rows: []string{"смета"}}}
	pdf := &extractorFake{content: domain.Content{Text: "реестр"}}
	d := NewDispatcher(workbook, pdf, metrics.NewEngineMetrics("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	for _, path := range []string{"a.xlsx", "b.XLS"} {
		content, err := d.Extract(ctx, path)
		if err != nil {
			t.Fatalf("extract %s: %v", path, err)
		}
		if len(content.Rows) != 1 {
			t.Fatalf("expected workbook content for %s, got %+v", path, content)
		}
	}
	if len(workbook.paths) != 2 {
		t.Fatalf("expected 2 workbook extractions, got %v", workbook.paths)
	}

	content, err := d.Extract(ctx, "c.pdf")
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if content.Text != "реестр" {
		t.Fatalf("expected pdf content, got %+v", content)
	}
	if len(pdf.paths) != 1 {
		t.Fatalf("expected 1 pdf extraction, got %v", pdf.paths)
	}
}

func TestDispatcherIgnoresUnknownExtensions(t *testing.T) {
	workbook := &extractorFake{}
	pdf := &extractorFake{}
	d := NewDispatcher(workbook, pdf, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	content, err := d.Extract(context.Background(), "notes.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !content.Empty() {
		t.Fatalf("expected empty content, got %+v", content)
	}
	if len(workbook.paths) != 0 || len(pdf.paths) != 0 {
		t.Fatalf("expected no delegation for unknown extensions")
	}
}

func TestDispatcherPropagatesErrors(t *testing.T) {
	errExtract := errors.New("worksheet unreadable")
	d := NewDispatcher(&extractorFake{err: errExtract}, &extractorFake{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := d.Extract(context.Background(), "a.xls")
	if !errors.Is(err, errExtract) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}
