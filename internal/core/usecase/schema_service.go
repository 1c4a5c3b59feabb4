package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
	"github.com/atvirokodosprendimai/dataforge/internal/core/ports"
)

//go:embed meta.schema.json
var metaSchemaJSON []byte

var (
	metaOnce   sync.Once
	metaSchema *santhosh.Schema
	metaErr    error
)

// compiledMeta returns the compiled meta-schema that every incoming schema
// document must satisfy before it is decoded.
func compiledMeta() (*santhosh.Schema, error) {
	metaOnce.Do(func() {
		compiler := santhosh.NewCompiler()
		compiler.Draft = santhosh.Draft7
		if err := compiler.AddResource("meta.schema.json", bytes.NewReader(metaSchemaJSON)); err != nil {
			metaErr = err
			return
		}
		metaSchema, metaErr = compiler.Compile("meta.schema.json")
	})
	return metaSchema, metaErr
}

// SchemaService is the registry the rest of the system calls through: it holds
// named schemas, persists their declarative documents, and fronts generation
// and validation. The in-memory cache is last-write-wins; concurrent callers
// only risk redundant reloads, never corruption.
type SchemaService struct {
	repo      ports.SchemaRepository
	store     ports.DatasetStore
	catalog   ports.DatasetCatalog
	generator *RecordGenerator
	validator *RecordValidator
	dataDir   string

	cache     sync.Map // schema name → domain.Schema
	loadCache sync.Map // dataset source path → []domain.Record
}

func NewSchemaService(
	repo ports.SchemaRepository,
	store ports.DatasetStore,
	catalog ports.DatasetCatalog,
	generator *RecordGenerator,
	validator *RecordValidator,
	dataDir string,
) *SchemaService {
	return &SchemaService{
		repo:      repo,
		store:     store,
		catalog:   catalog,
		generator: generator,
		validator: validator,
		dataDir:   dataDir,
	}
}

// Register validates the schema, persists its document, and caches it under
// its name, overwriting any prior definition with that name.
func (s *SchemaService) Register(ctx context.Context, schema domain.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, schema); err != nil {
		return fmt.Errorf("persist schema %q: %w", schema.Name, err)
	}
	s.cache.Store(schema.Name, schema)
	return nil
}

// RegisterDocument validates a raw declarative document against the embedded
// meta-schema, decodes it, and registers the result.
func (s *SchemaService) RegisterDocument(ctx context.Context, doc json.RawMessage) (domain.Schema, error) {
	if !json.Valid(doc) {
		return domain.Schema{}, fmt.Errorf("%w: document must be valid json", domain.ErrInvalidSchema)
	}

	meta, err := compiledMeta()
	if err != nil {
		return domain.Schema{}, fmt.Errorf("compile meta schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return domain.Schema{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if err := meta.Validate(v); err != nil {
		return domain.Schema{}, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}

	var schema domain.Schema
	if err := json.Unmarshal(doc, &schema); err != nil {
		return domain.Schema{}, err
	}
	if err := s.Register(ctx, schema); err != nil {
		return domain.Schema{}, err
	}
	return schema, nil
}

// Load resolves a schema by name: cache first, then the backing store. A miss
// is reported as domain.ErrNotFound and never populates the cache.
func (s *SchemaService) Load(ctx context.Context, name string) (domain.Schema, error) {
	if cached, ok := s.cache.Load(name); ok {
		return cached.(domain.Schema), nil
	}

	schema, err := s.repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Schema{}, domain.ErrNotFound
		}
		return domain.Schema{}, fmt.Errorf("load schema %q: %w", name, err)
	}
	s.cache.Store(name, schema)
	return schema, nil
}

func (s *SchemaService) Delete(ctx context.Context, name string) (bool, error) {
	s.cache.Delete(name)
	return s.repo.Delete(ctx, name)
}

func (s *SchemaService) List(ctx context.Context) ([]domain.Schema, error) {
	return s.repo.List(ctx)
}

// Generate produces count records for the named schema without persisting
// them; the caller owns the batch.
func (s *SchemaService) Generate(ctx context.Context, name string, count int) ([]domain.Record, error) {
	schema, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(schema, count)
}

// GenerateAndStore generates count records and hands them to the dataset store
// in the requested format. It returns the location the store wrote to. The
// catalog append is best-effort bookkeeping.
func (s *SchemaService) GenerateAndStore(ctx context.Context, name string, count int, format domain.Format) (string, error) {
	schema, err := s.Load(ctx, name)
	if err != nil {
		return "", err
	}

	records, err := s.generator.Generate(schema, count)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	location := filepath.Join(s.dataDir, fmt.Sprintf("%s_%s.%s", name, now.Format("20060102_150405"), format.Ext()))
	if err := s.store.Save(ctx, records, location, format); err != nil {
		return "", fmt.Errorf("store dataset: %w", err)
	}

	_ = s.catalog.Append(ctx, domain.Dataset{
		ID:          uuid.NewString(),
		SchemaName:  name,
		RecordCount: len(records),
		Format:      format,
		Location:    location,
		CreatedAt:   now,
	})

	return location, nil
}

// ValidateRecords checks an in-memory batch against the named schema.
func (s *SchemaService) ValidateRecords(ctx context.Context, name string, records []domain.Record) (domain.ValidationReport, error) {
	schema, err := s.Load(ctx, name)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return s.validator.ValidateAll(records, schema), nil
}

// ValidateStored loads a persisted dataset and validates it against the named
// schema. Loaded batches are cached by source path, last-write-wins.
func (s *SchemaService) ValidateStored(ctx context.Context, name, source string, format domain.Format) (domain.ValidationReport, error) {
	schema, err := s.Load(ctx, name)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	var records []domain.Record
	if cached, ok := s.loadCache.Load(source); ok {
		records = cached.([]domain.Record)
	} else {
		records, err = s.store.Load(ctx, source, format)
		if err != nil {
			return domain.ValidationReport{}, fmt.Errorf("load dataset %q: %w", source, err)
		}
		s.loadCache.Store(source, records)
	}

	return s.validator.ValidateAll(records, schema), nil
}
