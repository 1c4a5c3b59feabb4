package domain

import "errors"

var (
	ErrNotFound        = errors.New("schema not found")
	ErrInvalidField    = errors.New("invalid field spec")
	ErrInvalidSchema   = errors.New("invalid schema")
	ErrUnknownDataType = errors.New("unknown data type")
	ErrUnknownFormat   = errors.New("unknown format")
	ErrUnknownCategory = errors.New("unknown provider category")
)
