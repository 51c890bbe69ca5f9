package extractor

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
	"github.com/mkraev/smeta-sorter/internal/observability/metrics"
)

// Dispatcher routes extraction by extension: workbooks to the sheet reader,
// PDFs to the text-layer and OCR pipeline. Anything else yields empty
// content, classification then works from the filename alone.
type Dispatcher struct {
	workbook ports.ContentExtractor
	pdf      ports.ContentExtractor
	metrics  *metrics.EngineMetrics
	logger   *slog.Logger
}

func NewDispatcher(workbook, pdf ports.ContentExtractor, engineMetrics *metrics.EngineMetrics, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		workbook: workbook,
		pdf:      pdf,
		metrics:  engineMetrics,
		logger:   logger,
	}
}

func (d *Dispatcher) Extract(ctx context.Context, path string) (domain.Content, error) {
	var (
		kind    string
		content domain.Content
		err     error
	)

	start := time.Now()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		kind = "workbook"
		content, err = d.workbook.Extract(ctx, path)
	case ".pdf":
		kind = "pdf"
		content, err = d.pdf.Extract(ctx, path)
	default:
		return domain.Content{}, nil
	}

	if d.metrics != nil {
		d.metrics.ObserveExtraction(kind, time.Since(start), err)
	}
	d.logger.Debug("content extracted",
		"path", path,
		"kind", kind,
		"empty", content.Empty(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return content, err
}
