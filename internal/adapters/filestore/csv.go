package filestore

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

// encodeCSV writes records as a table: columns are the union of field names,
// sorted for a stable header. Structured values are embedded as JSON cells.
func encodeCSV(records []domain.Record) ([]byte, error) {
	header := columnNames(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range header {
			cell, err := formatCell(rec[col])
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col, err)
			}
			row[i] = cell
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeCSV re-infers value types from cell text: CSV itself carries none.
// Booleans, integers, floats, and embedded JSON come back as their original
// types; empty cells mean the field was absent.
func decodeCSV(data []byte) ([]domain.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv dataset: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Record{}, nil
	}

	header := rows[0]
	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(domain.Record, len(header))
		for i, col := range header {
			if i >= len(row) || row[i] == "" {
				continue
			}
			rec[col] = inferCell(row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnNames(records []domain.Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, rec := range records {
		for name := range rec {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func formatCell(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	default:
		data, err := gojson.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("encode cell: %w", err)
		}
		return string(data), nil
	}
}

func inferCell(cell string) any {
	switch cell {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	if strings.HasPrefix(cell, "{") || strings.HasPrefix(cell, "[") {
		var v any
		if err := gojson.Unmarshal([]byte(cell), &v); err == nil {
			return v
		}
	}
	return cell
}
