package usecase

import (
	"context"
	"fmt"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/usecase/interfaces"
)

// ICatalogUseCase loads and saves the pricing catalog through the storage
// port. Loads always yield a fully-populated catalog: stored rows are
// normalized, and an empty backend falls back to the built-in defaults.
type ICatalogUseCase interface {
	Get(ctx context.Context) (entities.Catalog, string, error)
	Save(ctx context.Context, raw entities.RawCatalog) (entities.Catalog, string, error)
}

type CatalogUseCase struct {
	repo interfaces.ICatalogRepository
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.ICatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Get returns the normalized catalog and an informational source name. The
// source only says where the catalog came from; it never changes the shape of
// the result.
func (u *CatalogUseCase) Get(ctx context.Context) (entities.Catalog, string, error) {
	raw, ok, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Catalog{}, "", fmt.Errorf("load catalog: %w", err)
	}
	if !ok {
		return entities.DefaultCatalog(), u.repo.Source() + "-defaults", nil
	}
	return entities.NormalizeCatalog(raw), u.repo.Source(), nil
}

// Save normalizes the incoming catalog and persists it batch-or-nothing.
func (u *CatalogUseCase) Save(ctx context.Context, raw entities.RawCatalog) (entities.Catalog, string, error) {
	normalized := entities.NormalizeCatalog(raw)
	if err := u.repo.Save(ctx, normalized); err != nil {
		return entities.Catalog{}, "", fmt.Errorf("save catalog: %w", err)
	}
	return normalized, u.repo.Source(), nil
}
