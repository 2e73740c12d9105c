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


package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/facultyfinder/core"
)

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates a duplicate key violation.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery indicates invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)

// MatchesSpecialization reports whether any of record's specializations
// contains keyword, ignoring case. Repositories share it so every backend
// filters identically.
func MatchesSpecialization(record *core.FacultyRecord, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	return slices.ContainsFunc(record.SpecializationList, func(s string) bool {
		return strings.Contains(strings.ToLower(s), keyword)
	})
}

// CheckRecords rejects nil records and records sharing an ID.
func CheckRecords(records []*core.FacultyRecord) error {
	seen := make(map[core.ID]struct{}, len(records))
	for i, r := range records {
		if r == nil {
			return fmt.Errorf("%w: record %d is nil", ErrInvalidQuery, i)
		}
		if _, dup := seen[r.Id]; dup {
			return fmt.Errorf("%w: faculty id %d", ErrDuplicateKey, r.Id)
		}
		seen[r.Id] = struct{}{}
	}
	return nil
}
