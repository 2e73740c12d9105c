package storage

import (
	"context"

	"github.com/poiesic/facultyfinder/core"
)

// FacultyRepository persists the cleaned faculty catalog.
// Implementations must be thread-safe and support concurrent access.
type FacultyRepository interface {
	// ReplaceFacultyRecords atomically replaces the whole catalog with records.
	// Record IDs are preserved; duplicate IDs are rejected with ErrDuplicateKey.
	ReplaceFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) error

	// ListFacultyRecords returns every record ordered by ID ascending.
	ListFacultyRecords(ctx context.Context) ([]*core.FacultyRecord, error)

	// GetFacultyRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetFacultyRecord(ctx context.Context, id core.ID) (*core.FacultyRecord, error)

	// GetFacultyRecords retrieves multiple records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetFacultyRecords(ctx context.Context, ids ...core.ID) ([]*core.FacultyRecord, error)

	// FindBySpecialization returns records with a specialization containing
	// keyword, compared case-insensitively, ordered by ID.
	// Returns ErrInvalidQuery for a blank keyword.
	FindBySpecialization(ctx context.Context, keyword string) ([]*core.FacultyRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
