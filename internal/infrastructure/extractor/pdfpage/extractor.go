package pdfpage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
)

// minTextLayerRunes is how much embedded text the first page must carry
// before OCR is skipped. Scanned estimates usually have either no text layer
// at all or a few runes of producer metadata.
const minTextLayerRunes = 20

// Extractor reads the first page of a PDF: the embedded text layer when one
// exists, otherwise a rendered page pushed through OCR.
type Extractor struct {
	renderer ports.PageRenderer
	ocr      ports.ImageOCR
	logger   *slog.Logger

	textLayer func(path string) string
}

func New(renderer ports.PageRenderer, ocr ports.ImageOCR, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		renderer:  renderer,
		ocr:       ocr,
		logger:    logger,
		textLayer: readTextLayer,
	}
}

func (e *Extractor) Extract(ctx context.Context, path string) (domain.Content, error) {
	if err := ctx.Err(); err != nil {
		return domain.Content{}, err
	}

	text := normalize(e.textLayer(path))
	if utf8.RuneCountInString(text) >= minTextLayerRunes {
		return domain.Content{Text: text}, nil
	}

	e.logger.Debug("pdf text layer too small, running ocr",
		"path", path,
		"runes", utf8.RuneCountInString(text),
	)

	outDir, err := os.MkdirTemp("", "pdfpage-")
	if err != nil {
		return domain.Content{}, fmt.Errorf("create render dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	image, err := e.renderer.RenderFirstPage(ctx, path, outDir)
	if err != nil {
		return domain.Content{}, fmt.Errorf("render first page: %w", err)
	}
	recognized, err := e.ocr.Recognize(ctx, image)
	if err != nil {
		return domain.Content{}, fmt.Errorf("recognize page: %w", err)
	}
	return domain.Content{Text: normalize(recognized)}, nil
}

// readTextLayer pulls the embedded text of the first page. Scanned files
// have none, and the parser panics on some real-world PDFs, so any failure
// here just means "no text layer".
func readTextLayer(path string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	if reader.NumPage() < 1 {
		return ""
	}
	page := reader.Page(1)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
