package filestore

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

func encodeYAML(records []domain.Record) ([]byte, error) {
	if records == nil {
		records = []domain.Record{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

func decodeYAML(data []byte) ([]domain.Record, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		var single map[string]any
		if err2 := yaml.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("decode yaml dataset: %w", err)
		}
		raw = []map[string]any{single}
	}

	records := make([]domain.Record, 0, len(raw))
	for _, m := range raw {
		records = append(records, domain.Record(m))
	}
	return records, nil
}
