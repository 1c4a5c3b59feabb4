package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/atvirokodosprendimai/dataforge/internal/adapters/fakedata"
	"github.com/atvirokodosprendimai/dataforge/internal/adapters/filestore"
	"github.com/atvirokodosprendimai/dataforge/internal/adapters/httpapi"
	sqliteadapter "github.com/atvirokodosprendimai/dataforge/internal/adapters/sqlite"
	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
	"github.com/atvirokodosprendimai/dataforge/internal/core/usecase"
	"github.com/atvirokodosprendimai/dataforge/migrations"
)

type Config struct {
	Addr    string
	DBPath  string
	DataDir string
	Seed    uint64
	Locale  string
}

// App is the composition root: it owns the registry instance and every
// adapter behind it. There is no process-wide state; callers hold the App and
// pass its services around.
type App struct {
	Schemas  *usecase.SchemaService
	Datasets *usecase.DatasetService

	db *gorm.DB
}

func New(ctx context.Context, cfg Config) (*App, error) {
	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = sqliteadapter.Close(db)
		return nil, fmt.Errorf("resolve sql db: %w", err)
	}

	migCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := migrations.Up(migCtx, sqlDB); err != nil {
		_ = sqliteadapter.Close(db)
		return nil, err
	}

	schemaRepo := sqliteadapter.NewSchemaRepository(db)
	datasetRepo := sqliteadapter.NewDatasetRepository(db)

	genOpts := []usecase.GeneratorOption{usecase.WithLocale(cfg.Locale)}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, usecase.WithSeed(cfg.Seed))
	}
	values := usecase.NewValueGenerator(fakedata.New(cfg.Seed), genOpts...)

	schemas := usecase.NewSchemaService(
		schemaRepo,
		filestore.New(),
		datasetRepo,
		usecase.NewRecordGenerator(values),
		usecase.NewRecordValidator(domain.BuiltinPredicates()),
		cfg.DataDir,
	)

	return &App{
		Schemas:  schemas,
		Datasets: usecase.NewDatasetService(datasetRepo),
		db:       db,
	}, nil
}

func (a *App) Close() error {
	return sqliteadapter.Close(a.db)
}

// NewServer builds the HTTP surface over a fresh App.
func NewServer(ctx context.Context, cfg Config) (*http.Server, io.Closer, error) {
	a, err := New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(a.Schemas, a.Datasets)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server, a, nil
}
