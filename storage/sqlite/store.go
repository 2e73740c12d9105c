package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/storage"
)

//go:embed schema.sql
var schema string

const selectColumns = `faculty_id, name, faculty_type, education, bio,
	specialization_list, research_tags, email, phone, address, combined_text`

// Store is a SQLite-backed faculty repository.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.FacultyRepository = (*Store)(nil)

// NewRepository opens (or creates) the SQLite catalog at path.
func NewRepository(path string, logger *slog.Logger) (storage.FacultyRepository, error) {
	store, err := NewStore(path, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewStore opens (or creates) the SQLite catalog at path and ensures the
// faculty table exists. A nil logger uses slog.Default().
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "sqlite", "path", path),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceFacultyRecords deletes every row and inserts records in one transaction.
func (s *Store) ReplaceFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) error {
	if err := storage.CheckRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM faculty"); err != nil {
		return fmt.Errorf("clearing faculty table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO faculty (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		specs, err := marshalList(r.SpecializationList)
		if err != nil {
			return err
		}
		tags, err := marshalList(r.ResearchTags)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, int64(r.Id), r.Name, r.FacultyType, r.Education, r.Bio,
			specs, tags, r.Email, r.Phone, r.Address, r.CombinedText)
		if err != nil {
			return fmt.Errorf("inserting faculty %d: %w", r.Id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing faculty records: %w", err)
	}
	s.logger.Info("faculty catalog replaced", "records", len(records))
	return nil
}

// ListFacultyRecords returns every record ordered by ID.
func (s *Store) ListFacultyRecords(ctx context.Context) ([]*core.FacultyRecord, error) {
	return s.query(ctx, "SELECT "+selectColumns+" FROM faculty ORDER BY faculty_id")
}

// GetFacultyRecord retrieves a single record by ID.
func (s *Store) GetFacultyRecord(ctx context.Context, id core.ID) (*core.FacultyRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM faculty WHERE faculty_id = ?", int64(id))
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return r, err
}

// GetFacultyRecords retrieves the records that exist among ids, in the order given.
func (s *Store) GetFacultyRecords(ctx context.Context, ids ...core.ID) ([]*core.FacultyRecord, error) {
	results := make([]*core.FacultyRecord, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetFacultyRecord(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// FindBySpecialization returns records whose specializations contain keyword.
// Matching runs over the decoded lists rather than the JSON column text.
func (s *Store) FindBySpecialization(ctx context.Context, keyword string) ([]*core.FacultyRecord, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: specialization keyword is empty", storage.ErrInvalidQuery)
	}
	all, err := s.ListFacultyRecords(ctx)
	if err != nil {
		return nil, err
	}
	var results []*core.FacultyRecord
	for _, r := range all {
		if storage.MatchesSpecialization(r, keyword) {
			results = append(results, r)
		}
	}
	return results, nil
}

// Count returns the number of rows in the faculty table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM faculty").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting faculty: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*core.FacultyRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying faculty: %w", err)
	}
	defer rows.Close()

	var results []*core.FacultyRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*core.FacultyRecord, error) {
	var (
		r          core.FacultyRecord
		id         int64
		specs, tag string
	)
	err := row.Scan(&id, &r.Name, &r.FacultyType, &r.Education, &r.Bio,
		&specs, &tag, &r.Email, &r.Phone, &r.Address, &r.CombinedText)
	if err != nil {
		return nil, err
	}
	r.Id = core.ID(id)
	if r.SpecializationList, err = unmarshalList(specs); err != nil {
		return nil, fmt.Errorf("faculty %d specialization_list: %w", id, err)
	}
	if r.ResearchTags, err = unmarshalList(tag); err != nil {
		return nil, fmt.Errorf("faculty %d research_tags: %w", id, err)
	}
	return &r, nil
}

// marshalList encodes a list column. nil is stored as "[]".
func marshalList(v []string) (string, error) {
	if v == nil {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return string(data), nil
}

// unmarshalList decodes a list column. Empty lists decode as nil.
func unmarshalList(s string) ([]string, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}
