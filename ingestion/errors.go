package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a faculty repository is not provided.
	ErrRepositoryRequired = errors.New("faculty repository required")

	// ErrInvalidInput is returned when a profile or record file cannot be decoded.
	ErrInvalidInput = errors.New("invalid ingestion input")

	// ErrInvalidRecord is returned when a record fails validation after cleaning.
	ErrInvalidRecord = errors.New("invalid faculty record")
)
