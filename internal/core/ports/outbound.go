package ports

import (
	"context"
	"time"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// TagStore persists the type taxonomy.
type TagStore interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Save(ctx context.Context, catalog domain.Catalog) error
}

// CatalogProvider hands out the taxonomy snapshot a traversal classifies with.
type CatalogProvider interface {
	Snapshot(ctx context.Context) (domain.Catalog, error)
}

// ContentExtractor pulls matchable text out of one file.
type ContentExtractor interface {
	Extract(ctx context.Context, path string) (domain.Content, error)
}

// PageRenderer rasterizes the first page of a PDF into an image for OCR.
type PageRenderer interface {
	RenderFirstPage(ctx context.Context, pdfPath, outDir string) (string, error)
}

// ImageOCR recognizes text on a rendered page image.
type ImageOCR interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// FileOperator performs the filesystem side of apply operations.
type FileOperator interface {
	Exists(path string) bool
	EnsureDir(path string) error
	Copy(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, src, dst string) error
}

// ProgressFunc receives traversal progress after every processed file.
type ProgressFunc func(done, total int)

// RunObserver receives run lifecycle signals for monitoring.
type RunObserver interface {
	RunStarted()
	RunFinished(status string, duration time.Duration, files int)
}
