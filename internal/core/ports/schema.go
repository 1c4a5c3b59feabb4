package ports

import (
	"context"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

type SchemaRepository interface {
	Upsert(ctx context.Context, schema domain.Schema) error
	Get(ctx context.Context, name string) (domain.Schema, error)
	Delete(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Schema, error)
}
