package filestore

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

func encodeJSON(records []domain.Record) ([]byte, error) {
	if records == nil {
		records = []domain.Record{}
	}
	data, err := gojson.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeJSON accepts either a list of records or a single record object.
func decodeJSON(data []byte) ([]domain.Record, error) {
	var records []domain.Record
	if err := gojson.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var single domain.Record
	if err := gojson.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decode json dataset: %w", err)
	}
	return []domain.Record{single}, nil
}
