package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

type datasetModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	SchemaName  string    `gorm:"column:schema_name;not null"`
	RecordCount int       `gorm:"column:record_count;not null"`
	Format      string    `gorm:"column:format;not null"`
	Location    string    `gorm:"column:location;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (datasetModel) TableName() string {
	return "datasets"
}

// DatasetRepository is the catalog of generated dataset files.
type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

func (r *DatasetRepository) Append(ctx context.Context, ds domain.Dataset) error {
	model := datasetModel{
		ID:          ds.ID,
		SchemaName:  ds.SchemaName,
		RecordCount: ds.RecordCount,
		Format:      string(ds.Format),
		Location:    ds.Location,
		CreatedAt:   ds.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("append dataset: %w", err)
	}
	return nil
}

func (r *DatasetRepository) List(ctx context.Context, limit int) ([]domain.Dataset, error) {
	var models []datasetModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}

	out := make([]domain.Dataset, 0, len(models))
	for _, model := range models {
		out = append(out, domain.Dataset{
			ID:          model.ID,
			SchemaName:  model.SchemaName,
			RecordCount: model.RecordCount,
			Format:      domain.Format(model.Format),
			Location:    model.Location,
			CreatedAt:   model.CreatedAt,
		})
	}
	return out, nil
}
