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


// Package catalog holds the in-memory record store searched by the resolver.
//
// A Catalog is built once from validated records and never changes afterwards.
// Lowercase renderings of each record's name, bio and combined text are
// computed at construction so matching never re-normalizes record data.
// All methods are safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/facultyfinder/core"
)

var (
	// ErrNilRecord indicates a nil record was passed to New.
	ErrNilRecord = errors.New("record cannot be nil")

	// ErrDuplicateID indicates two records share an ID.
	ErrDuplicateID = errors.New("duplicate faculty id")
)

type entry struct {
	record    *core.FacultyRecord
	nameLower string
	bioLower  string
	textLower string
}

// Catalog is an immutable, ordered collection of faculty records.
type Catalog struct {
	entries []entry
	byID    map[core.ID]int
}

// New builds a catalog from records, preserving their order.
// Records are validated and copied; later changes to the inputs are not observed.
func New(records []*core.FacultyRecord) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entry, 0, len(records)),
		byID:    make(map[core.ID]int, len(records)),
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("position %d: %w", i, ErrNilRecord)
		}
		if err := core.ValidateFacultyRecord(r); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		if prev, exists := c.byID[r.Id]; exists {
			return nil, fmt.Errorf("%w: id %d at positions %d and %d", ErrDuplicateID, r.Id, prev, i)
		}
		c.byID[r.Id] = i
		clone := r.Clone()
		c.entries = append(c.entries, entry{
			record:    clone,
			nameLower: strings.ToLower(clone.Name),
			bioLower:  strings.ToLower(clone.Bio),
			textLower: strings.ToLower(clone.CombinedText),
		})
	}
	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the record at position i. Callers must not modify it.
func (c *Catalog) At(i int) *core.FacultyRecord {
	return c.entries[i].record
}

// Get returns the record with the given ID.
func (c *Catalog) Get(id core.ID) (*core.FacultyRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return c.entries[i].record, true
}

// Records returns all records in catalog order.
func (c *Catalog) Records() []*core.FacultyRecord {
	out := make([]*core.FacultyRecord, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].record
	}
	return out
}

// Texts returns every record's combined text in catalog order.
// This is the corpus handed to the embedding index.
func (c *Catalog) Texts() []string {
	out := make([]string, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].record.CombinedText
	}
	return out
}

// Fingerprints returns the combined-text fingerprint of every record in catalog order.
func (c *Catalog) Fingerprints() []core.Fingerprint {
	out := make([]core.Fingerprint, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].record.Fingerprint()
	}
	return out
}

// MatchName returns the positions of records whose lowercase name contains query.
// The query is expected to be lowercase already.
func (c *Catalog) MatchName(query string) []int {
	return c.match(query, func(e *entry) string { return e.nameLower })
}

// MatchBio returns the positions of records whose lowercase bio contains query.
func (c *Catalog) MatchBio(query string) []int {
	return c.match(query, func(e *entry) string { return e.bioLower })
}

// MatchText returns the positions of records whose lowercase combined text contains query.
func (c *Catalog) MatchText(query string) []int {
	return c.match(query, func(e *entry) string { return e.textLower })
}

func (c *Catalog) match(query string, field func(*entry) string) []int {
	var hits []int
	for i := range c.entries {
		if strings.Contains(field(&c.entries[i]), query) {
			hits = append(hits, i)
		}
	}
	return hits
}
