package ports

import (
	"context"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

// DatasetStore persists and loads record batches. A Save is all-or-nothing:
// either the destination holds every record afterwards or it is untouched.
type DatasetStore interface {
	Save(ctx context.Context, records []domain.Record, destination string, format domain.Format) error
	Load(ctx context.Context, source string, format domain.Format) ([]domain.Record, error)
}

// DatasetCatalog records where generated batches were stored.
type DatasetCatalog interface {
	Append(ctx context.Context, ds domain.Dataset) error
	List(ctx context.Context, limit int) ([]domain.Dataset, error)
}
