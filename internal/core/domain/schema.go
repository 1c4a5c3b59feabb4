package domain

import (
	"fmt"
	"strconv"
)

// Schema is a named, versioned, ordered collection of field specs. Field order
// matters for serialization and display only; validation treats fields as a
// set. Schemas are never mutated in place: changes go through re-registration.
type Schema struct {
	Name        string
	Version     string
	Description string
	Fields      []FieldSpec
}

// Validate enforces the schema-level invariants: a non-empty name, unique
// field names, and every field passing its own construction checks.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Field returns the spec for name, if declared.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Check validates one record against the schema. It returns whether the record
// conforms and every violation found. Rules for a present value are
// independent: a single field can report a type mismatch and a choices
// violation in the same pass. A missing required field short-circuits the
// remaining checks for that field only.
func (s Schema) Check(rec Record, preds Predicates) (bool, []string) {
	var violations []string

	for _, f := range s.Fields {
		value, present := rec[f.Name]
		if value == nil {
			present = false
		}

		if !present {
			if f.Required {
				violations = append(violations, fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}

		if !matchesType(value, f.Type) {
			violations = append(violations, fmt.Sprintf("field %q has wrong type, expected %s", f.Name, f.Type))
		}

		if f.Type.StringLike() {
			if n := valueLength(value); n >= 0 {
				if f.MinLength != nil && n < *f.MinLength {
					violations = append(violations, fmt.Sprintf("field %q length must be at least %d", f.Name, *f.MinLength))
				}
				if f.MaxLength != nil && n > *f.MaxLength {
					violations = append(violations, fmt.Sprintf("field %q length must be at most %d", f.Name, *f.MaxLength))
				}
			}
		}

		if f.Type.Numeric() {
			if n, ok := toFloat(value); ok {
				if f.MinValue != nil && n < *f.MinValue {
					violations = append(violations, fmt.Sprintf("field %q must be at least %s", f.Name, formatBound(*f.MinValue)))
				}
				if f.MaxValue != nil && n > *f.MaxValue {
					violations = append(violations, fmt.Sprintf("field %q must be at most %s", f.Name, formatBound(*f.MaxValue)))
				}
			}
		}

		if len(f.Choices) > 0 && !containsValue(f.Choices, value) {
			violations = append(violations, fmt.Sprintf("field %q must be one of %v", f.Name, f.Choices))
		}

		if f.Validator != "" {
			pred, ok := preds[f.Validator]
			if !ok {
				violations = append(violations, fmt.Sprintf("field %q references unknown validator %q", f.Name, f.Validator))
			} else if !pred(value) {
				violations = append(violations, fmt.Sprintf("field %q failed validation %q", f.Name, f.Validator))
			}
		}
	}

	return len(violations) == 0, violations
}

func containsValue(choices []any, v any) bool {
	for _, c := range choices {
		if equalValue(c, v) {
			return true
		}
	}
	return false
}

// formatBound renders numeric bounds without a trailing ".0" so messages read
// "at most 100" rather than "at most 100.000000".
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
