package usecase

import (
	"context"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
	"github.com/atvirokodosprendimai/dataforge/internal/core/ports"
)

// DatasetService lists the catalog of generated dataset files.
type DatasetService struct {
	catalog ports.DatasetCatalog
}

func NewDatasetService(catalog ports.DatasetCatalog) *DatasetService {
	return &DatasetService{catalog: catalog}
}

func (s *DatasetService) List(ctx context.Context, limit int) ([]domain.Dataset, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return s.catalog.List(ctx, limit)
}
