package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
)

// CatalogUseCase owns the in-memory taxonomy and keeps the store in sync.
// Mutations clone the catalog, persist the clone and only then swap it in,
// so a failed save leaves the served taxonomy untouched.
type CatalogUseCase struct {
	store  ports.TagStore
	logger *slog.Logger

	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewCatalogUseCase(ctx context.Context, store ports.TagStore, logger *slog.Logger) (*CatalogUseCase, error) {
	catalog, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tag catalog: %w", err)
	}
	logger.Info("tag catalog loaded", "types", len(catalog))
	return &CatalogUseCase{store: store, logger: logger, catalog: catalog}, nil
}

func (uc *CatalogUseCase) List(_ context.Context) (domain.Catalog, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.catalog.Clone(), nil
}

// Snapshot serves traversals; it is the same ordered clone List hands out.
func (uc *CatalogUseCase) Snapshot(ctx context.Context) (domain.Catalog, error) {
	return uc.List(ctx)
}

func (uc *CatalogUseCase) Get(_ context.Context, typeID string) (domain.DocumentType, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	t, ok := uc.catalog.Get(typeID)
	if !ok {
		return domain.DocumentType{}, domain.WrapError(domain.ErrTypeNotFound, "get document type", fmt.Errorf("id %q", typeID))
	}
	return t.Clone(), nil
}

func (uc *CatalogUseCase) AddTag(ctx context.Context, typeID string, area domain.TagArea, tag string) (domain.DocumentType, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.DocumentType{}, domain.WrapError(domain.ErrInvalidInput, "add tag", errors.New("tag is blank"))
	}
	if err := checkArea("add tag", area); err != nil {
		return domain.DocumentType{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	idx := indexOfType(next, typeID)
	if idx < 0 {
		return domain.DocumentType{}, domain.WrapError(domain.ErrTypeNotFound, "add tag", fmt.Errorf("id %q", typeID))
	}
	for _, existing := range next[idx].Tags(area) {
		if strings.EqualFold(existing, tag) {
			return domain.DocumentType{}, domain.WrapError(domain.ErrConflict, "add tag", fmt.Errorf("tag %q already present", tag))
		}
	}
	setTags(&next[idx], area, append(next[idx].Tags(area), tag))

	if err := uc.persist(ctx, next); err != nil {
		return domain.DocumentType{}, err
	}
	uc.logger.Info("tag added", "type_id", typeID, "area", string(area), "tag", tag)
	return next[idx].Clone(), nil
}

func (uc *CatalogUseCase) RemoveTag(ctx context.Context, typeID string, area domain.TagArea, tag string) (domain.DocumentType, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.DocumentType{}, domain.WrapError(domain.ErrInvalidInput, "remove tag", errors.New("tag is blank"))
	}
	if err := checkArea("remove tag", area); err != nil {
		return domain.DocumentType{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	idx := indexOfType(next, typeID)
	if idx < 0 {
		return domain.DocumentType{}, domain.WrapError(domain.ErrTypeNotFound, "remove tag", fmt.Errorf("id %q", typeID))
	}
	tags := next[idx].Tags(area)
	found := -1
	for i, existing := range tags {
		if strings.EqualFold(existing, tag) {
			found = i
			break
		}
	}
	if found < 0 {
		return domain.DocumentType{}, domain.WrapError(domain.ErrTagNotFound, "remove tag", fmt.Errorf("tag %q", tag))
	}
	setTags(&next[idx], area, append(tags[:found], tags[found+1:]...))

	if err := uc.persist(ctx, next); err != nil {
		return domain.DocumentType{}, err
	}
	uc.logger.Info("tag removed", "type_id", typeID, "area", string(area), "tag", tag)
	return next[idx].Clone(), nil
}

func (uc *CatalogUseCase) SetMask(ctx context.Context, typeID, mask string) (domain.DocumentType, error) {
	mask = strings.TrimSpace(mask)
	if mask == "" {
		return domain.DocumentType{}, domain.WrapError(domain.ErrInvalidInput, "set mask", errors.New("mask is blank"))
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	idx := indexOfType(next, typeID)
	if idx < 0 {
		return domain.DocumentType{}, domain.WrapError(domain.ErrTypeNotFound, "set mask", fmt.Errorf("id %q", typeID))
	}
	next[idx].Mask = mask

	if err := uc.persist(ctx, next); err != nil {
		return domain.DocumentType{}, err
	}
	uc.logger.Info("mask updated", "type_id", typeID, "mask", mask)
	return next[idx].Clone(), nil
}

// persist must run under the write lock.
func (uc *CatalogUseCase) persist(ctx context.Context, next domain.Catalog) error {
	if err := uc.store.Save(ctx, next); err != nil {
		return fmt.Errorf("persist tag catalog: %w", err)
	}
	uc.catalog = next
	return nil
}

func checkArea(operation string, area domain.TagArea) error {
	if area != domain.TagAreaName && area != domain.TagAreaContent {
		return domain.WrapError(domain.ErrInvalidInput, operation, fmt.Errorf("unknown tag area %q", area))
	}
	return nil
}

func indexOfType(catalog domain.Catalog, typeID string) int {
	for i := range catalog {
		if catalog[i].ID == typeID {
			return i
		}
	}
	return -1
}

func setTags(t *domain.DocumentType, area domain.TagArea, tags []string) {
	if area == domain.TagAreaContent {
		t.ContentTags = tags
		return
	}
	t.NameTags = tags
}
