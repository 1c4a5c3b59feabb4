// Package filestore persists record batches as JSON, CSV, or YAML files.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

// Store reads and writes dataset files. Saves are all-or-nothing: the batch is
// encoded up front and written through a temp file renamed into place, so a
// failed save never leaves a partial dataset behind.
type Store struct{}

func New() *Store {
	return &Store{}
}

func (s *Store) Save(ctx context.Context, records []domain.Record, destination string, format domain.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(records, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close dataset: %w", err)
	}
	if err := os.Rename(tmpName, destination); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("finalize dataset: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, source string, format domain.Format) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return decode(data, format)
}

func encode(records []domain.Record, format domain.Format) ([]byte, error) {
	switch format {
	case domain.FormatJSON:
		return encodeJSON(records)
	case domain.FormatCSV:
		return encodeCSV(records)
	case domain.FormatYAML:
		return encodeYAML(records)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}

func decode(data []byte, format domain.Format) ([]domain.Record, error) {
	switch format {
	case domain.FormatJSON:
		return decodeJSON(data)
	case domain.FormatCSV:
		return decodeCSV(data)
	case domain.FormatYAML:
		return decodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}
