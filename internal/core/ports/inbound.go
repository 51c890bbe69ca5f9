package ports

import (
	"context"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// CatalogService is the inbound contract for taxonomy reading and editing.
type CatalogService interface {
	List(ctx context.Context) (domain.Catalog, error)
	Get(ctx context.Context, typeID string) (domain.DocumentType, error)
	AddTag(ctx context.Context, typeID string, area domain.TagArea, tag string) (domain.DocumentType, error)
	RemoveTag(ctx context.Context, typeID string, area domain.TagArea, tag string) (domain.DocumentType, error)
	SetMask(ctx context.Context, typeID, mask string) (domain.DocumentType, error)
}

// RunService is the inbound contract for traversal runs.
type RunService interface {
	Start(ctx context.Context, params domain.ScanParams) (domain.Run, error)
	Get(ctx context.Context, runID string) (domain.Run, error)
	Cancel(ctx context.Context, runID string) error
	ValidateName(ctx context.Context, runID, sourcePath, candidate string) (domain.NameCheck, error)
	Apply(ctx context.Context, runID string, req domain.ApplyRequest) (domain.ApplyResult, error)
}
