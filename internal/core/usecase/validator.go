package usecase

import (
	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

// RecordValidator checks record batches against a schema and aggregates every
// violation into a ValidationReport. Invalid records are a normal outcome, not
// an error: ValidateAll never fails.
type RecordValidator struct {
	preds domain.Predicates
}

// NewRecordValidator builds a validator over the given predicate set; nil
// means the built-in predicates.
func NewRecordValidator(preds domain.Predicates) *RecordValidator {
	if preds == nil {
		preds = domain.BuiltinPredicates()
	}
	return &RecordValidator{preds: preds}
}

func (v *RecordValidator) ValidateAll(records []domain.Record, schema domain.Schema) domain.ValidationReport {
	report := domain.ValidationReport{Total: len(records)}

	for i, rec := range records {
		ok, violations := schema.Check(rec, v.preds)
		if ok {
			report.Valid++
			continue
		}
		report.Invalid++
		report.Errors = append(report.Errors, domain.RecordError{
			Index:  i,
			Record: rec,
			Errors: violations,
		})
	}
	return report
}
