// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/storage"
)

// FacultyRepository implements storage.FacultyRepository for BadgerDB.
type FacultyRepository struct {
	backend     *Backend
	ownsBackend bool
	logger      *slog.Logger
}

var _ storage.FacultyRepository = (*FacultyRepository)(nil)

// NewRepository opens (or creates) a badger catalog at path.
// The returned repository owns the database and closes it on Close.
func NewRepository(path string, logger *slog.Logger) (storage.FacultyRepository, error) {
	backend, err := OpenBackend(path, false, logger)
	if err != nil {
		return nil, fmt.Errorf("opening badger catalog %s: %w", path, err)
	}
	repo := NewFacultyRepository(backend)
	repo.ownsBackend = true
	return repo, nil
}

// NewFacultyRepository creates a repository over an open backend.
// Closing the repository leaves the backend open.
func NewFacultyRepository(backend *Backend) *FacultyRepository {
	return &FacultyRepository{
		backend: backend,
		logger:  backend.logger.With("repository", "faculty"),
	}
}

// Close closes the backend if the repository opened it.
func (r *FacultyRepository) Close() error {
	if !r.ownsBackend || r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}

// ReplaceFacultyRecords deletes every stored record and writes records in
// a single transaction.
func (r *FacultyRepository) ReplaceFacultyRecords(ctx context.Context, records ...*core.FacultyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.CheckRecords(records); err != nil {
		return err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		stale, err := r.collectKeys(tx)
		if err != nil {
			return err
		}
		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		for _, record := range records {
			if err := tx.Set(makeFacultyRecordKey(record.Id), storage.MarshalFacultyRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("replacing faculty records: %w", err)
	}

	r.logger.Info("faculty catalog replaced", "records", len(records))
	return nil
}

// ListFacultyRecords returns every record ordered by ID.
func (r *FacultyRepository) ListFacultyRecords(ctx context.Context) ([]*core.FacultyRecord, error) {
	return r.scan(ctx, func(*core.FacultyRecord) bool { return true })
}

// GetFacultyRecord retrieves a single record by ID.
func (r *FacultyRepository) GetFacultyRecord(ctx context.Context, id core.ID) (*core.FacultyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result *core.FacultyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readFacultyRecord(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetFacultyRecords retrieves the records that exist among ids, in the order given.
func (r *FacultyRepository) GetFacultyRecords(ctx context.Context, ids ...core.ID) ([]*core.FacultyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]*core.FacultyRecord, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readFacultyRecord(tx, id)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// FindBySpecialization returns records whose specializations contain keyword.
func (r *FacultyRepository) FindBySpecialization(ctx context.Context, keyword string) ([]*core.FacultyRecord, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: specialization keyword is empty", storage.ErrInvalidQuery)
	}
	return r.scan(ctx, func(record *core.FacultyRecord) bool {
		return storage.MatchesSpecialization(record, keyword)
	})
}

// Count returns the number of stored records without decoding them.
func (r *FacultyRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		keys, err := r.collectKeys(tx)
		count = len(keys)
		return err
	}, false)
	return count, err
}

// scan decodes every record in ID order and keeps those accepted by keep.
func (r *FacultyRepository) scan(ctx context.Context, keep func(*core.FacultyRecord) bool) ([]*core.FacultyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var results []*core.FacultyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(facultyRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.FacultyRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalFacultyRecord(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("decoding %q: %w", iter.Item().Key(), err)
			}
			if keep(record) {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// collectKeys returns copies of every faculty record key.
func (r *FacultyRepository) collectKeys(tx *badger.Txn) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(facultyRecordPrefix)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		key := iter.Item().KeyCopy(nil)
		if _, ok := idFromFacultyRecordKey(key); !ok {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// readFacultyRecord reads a record, returning nil if it doesn't exist.
func (r *FacultyRepository) readFacultyRecord(tx *badger.Txn, id core.ID) (*core.FacultyRecord, error) {
	item, err := tx.Get(makeFacultyRecordKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record *core.FacultyRecord
	err = item.Value(func(val []byte) error {
		record, err = storage.UnmarshalFacultyRecord(val)
		return err
	})
	return record, err
}
