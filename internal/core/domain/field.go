package domain

import "fmt"

// FieldSpec describes one named attribute of a record: its logical type and the
// constraints generation and validation both honor. Treat a FieldSpec as
// immutable once it is part of a registered schema.
type FieldSpec struct {
	Name          string
	Type          DataType
	Required      bool
	DefaultValue  any
	MinLength     *int
	MaxLength     *int
	MinValue      *float64
	MaxValue      *float64
	Pattern       string
	Choices       []any
	FakerProvider string
	Validator     string
	Description   string
}

// NewField returns a required FieldSpec with just a name and type. Constraints
// are set on the returned value before the schema is registered.
func NewField(name string, dataType DataType) FieldSpec {
	return FieldSpec{Name: name, Type: dataType, Required: true}
}

// Validate enforces the construction-time invariants: a non-empty name, a known
// type, and ordered min/max bounds. Contradictory bounds are rejected here so
// generation never sees a degenerate range.
func (f FieldSpec) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidField)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("%w: field %q: %q", ErrUnknownDataType, f.Name, f.Type)
	}
	if f.MinLength != nil && *f.MinLength < 0 {
		return fmt.Errorf("%w: field %q: min_length must not be negative", ErrInvalidField, f.Name)
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("%w: field %q: min_length %d exceeds max_length %d",
			ErrInvalidField, f.Name, *f.MinLength, *f.MaxLength)
	}
	if f.MinValue != nil && f.MaxValue != nil && *f.MinValue > *f.MaxValue {
		return fmt.Errorf("%w: field %q: min_value %v exceeds max_value %v",
			ErrInvalidField, f.Name, *f.MinValue, *f.MaxValue)
	}
	return nil
}

// IntPtr and FloatPtr build optional bounds in schema literals.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
