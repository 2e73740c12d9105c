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


// Package storage provides the storage abstraction layer for the faculty catalog.
//
// FacultyRepository decouples catalog persistence from search. Two backends
// implement it:
//
//   - storage/badger: embedded key-value store, records encoded with mus-go
//   - storage/sqlite: the relational "faculty" table, list columns held as JSON
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface:
//
//	repo, err := badger.NewRepository("/path/to/db")  // returns storage.FacultyRepository
//	repo, err := sqlite.NewRepository("faculty.db")   // returns storage.FacultyRepository
//
// Test helpers may return concrete types.
//
// # Replace Semantics
//
// The catalog is rebuilt wholesale on import: ReplaceFacultyRecords deletes
// every stored record and writes the new set in one transaction. Readers see
// either the old catalog or the new one, never a mix.
//
// # Usage
//
//	repo, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	records, err := repo.ListFacultyRecords(ctx)
package storage
