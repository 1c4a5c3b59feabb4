package domain

import (
	"encoding/json"
	"fmt"
)

// The declarative schema document. One document per schema, all FieldSpec
// attributes spelled out, field order preserved. Loading a just-saved document
// must reproduce an equivalent Schema.
type schemaDoc struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Fields      []fieldDoc `json:"fields"`
}

type fieldDoc struct {
	Name          string   `json:"name"`
	DataType      string   `json:"data_type"`
	Required      *bool    `json:"required"`
	DefaultValue  any      `json:"default_value"`
	MinLength     *int     `json:"min_length"`
	MaxLength     *int     `json:"max_length"`
	MinValue      *float64 `json:"min_value"`
	MaxValue      *float64 `json:"max_value"`
	Pattern       *string  `json:"pattern"`
	Choices       []any    `json:"choices"`
	FakerProvider *string  `json:"faker_provider"`
	Validator     *string  `json:"validator,omitempty"`
	Description   string   `json:"description"`
}

func (s Schema) MarshalJSON() ([]byte, error) {
	doc := schemaDoc{
		Name:        s.Name,
		Description: s.Description,
		Version:     s.Version,
		Fields:      make([]fieldDoc, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		doc.Fields = append(doc.Fields, fieldDoc{
			Name:          f.Name,
			DataType:      string(f.Type),
			Required:      boolPtr(f.Required),
			DefaultValue:  f.DefaultValue,
			MinLength:     f.MinLength,
			MaxLength:     f.MaxLength,
			MinValue:      f.MinValue,
			MaxValue:      f.MaxValue,
			Pattern:       optString(f.Pattern),
			Choices:       f.Choices,
			FakerProvider: optString(f.FakerProvider),
			Validator:     optString(f.Validator),
			Description:   f.Description,
		})
	}
	return json.Marshal(doc)
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	var doc schemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode schema document: %w", err)
	}

	out := Schema{
		Name:        doc.Name,
		Description: doc.Description,
		Version:     doc.Version,
		Fields:      make([]FieldSpec, 0, len(doc.Fields)),
	}
	for _, fd := range doc.Fields {
		dt, err := ParseDataType(fd.DataType)
		if err != nil {
			return fmt.Errorf("field %q: %w", fd.Name, err)
		}
		f := FieldSpec{
			Name:         fd.Name,
			Type:         dt,
			Required:     true,
			DefaultValue: fd.DefaultValue,
			MinLength:    fd.MinLength,
			MaxLength:    fd.MaxLength,
			MinValue:     fd.MinValue,
			MaxValue:     fd.MaxValue,
			Choices:      fd.Choices,
			Description:  fd.Description,
		}
		if fd.Required != nil {
			f.Required = *fd.Required
		}
		if fd.Pattern != nil {
			f.Pattern = *fd.Pattern
		}
		if fd.FakerProvider != nil {
			f.FakerProvider = *fd.FakerProvider
		}
		if fd.Validator != nil {
			f.Validator = *fd.Validator
		}
		out.Fields = append(out.Fields, f)
	}

	*s = out
	return nil
}

func boolPtr(v bool) *bool { return &v }

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
