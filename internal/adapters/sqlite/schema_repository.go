package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

type schemaModel struct {
	Name        string    `gorm:"column:name;primaryKey"`
	Version     string    `gorm:"column:version;not null"`
	Description string    `gorm:"column:description;not null"`
	DocJSON     string    `gorm:"column:doc_json;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (schemaModel) TableName() string {
	return "schema_docs"
}

// SchemaRepository stores declarative schema documents keyed by name.
type SchemaRepository struct {
	db *gorm.DB
}

func NewSchemaRepository(db *gorm.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

func (r *SchemaRepository) Upsert(ctx context.Context, schema domain.Schema) error {
	doc, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode schema document: %w", err)
	}

	now := time.Now().UTC()
	model := schemaModel{
		Name:        schema.Name,
		Version:     schema.Version,
		Description: schema.Description,
		DocJSON:     string(doc),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "description", "doc_json", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("upsert schema: %w", err)
	}
	return nil
}

func (r *SchemaRepository) Get(ctx context.Context, name string) (domain.Schema, error) {
	var model schemaModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Schema{}, domain.ErrNotFound
		}
		return domain.Schema{}, fmt.Errorf("get schema: %w", err)
	}
	return toSchemaDomain(model)
}

func (r *SchemaRepository) Delete(ctx context.Context, name string) (bool, error) {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&schemaModel{})
	if res.Error != nil {
		return false, fmt.Errorf("delete schema: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *SchemaRepository) List(ctx context.Context) ([]domain.Schema, error) {
	var models []schemaModel
	err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}

	schemas := make([]domain.Schema, 0, len(models))
	for _, model := range models {
		schema, err := toSchemaDomain(model)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func toSchemaDomain(model schemaModel) (domain.Schema, error) {
	var schema domain.Schema
	if err := json.Unmarshal([]byte(model.DocJSON), &schema); err != nil {
		return domain.Schema{}, fmt.Errorf("decode schema document %q: %w", model.Name, err)
	}
	return schema, nil
}
