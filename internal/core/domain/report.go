package domain

// RecordError holds every violation found on one record, addressed by its
// zero-based position in the validated batch.
type RecordError struct {
	Index  int      `json:"index"`
	Record Record   `json:"record"`
	Errors []string `json:"errors"`
}

// ValidationReport is the one-shot result of validating a record batch.
// Invariant: Valid + Invalid == Total.
type ValidationReport struct {
	Total   int           `json:"total"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
	Errors  []RecordError `json:"errors"`
}

// OK reports whether every record in the batch conformed.
func (r ValidationReport) OK() bool {
	return r.Invalid == 0
}
