package domain

import "time"

// Dataset is one catalog entry for a generated record batch that was handed to
// a sink. The records themselves are owned by the sink; the catalog only keeps
// where they went.
type Dataset struct {
	ID          string
	SchemaName  string
	RecordCount int
	Format      Format
	Location    string
	CreatedAt   time.Time
}
