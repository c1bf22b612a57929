package interfaces

import (
	"context"

	"catering_quotes/internal/domain/entities"
)

// ICatalogRepository abstracts catalog persistence.
//
// Load returns the stored rows in raw form (normalization is the domain's
// job) with ok=false when the backend holds no catalog yet. Save must be
// all-or-nothing: it reconciles the stored rows against the given catalog,
// deleting removed ids and upserting the rest, and either every change
// commits or none do.
type ICatalogRepository interface {
	Load(ctx context.Context) (raw entities.RawCatalog, ok bool, err error)
	Save(ctx context.Context, c entities.Catalog) error
	Source() string
}
