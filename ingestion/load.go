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


package ingestion

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/facultyfinder/core"
)

// RawProfile is one scraped faculty profile. Any field may be absent.
type RawProfile struct {
	Name           *string `json:"name"`
	Education      *string `json:"education"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Email          *string `json:"email"`
	Specialization *string `json:"specialization"`
	FacultyType    *string `json:"faculty_type"`
	Bio            *string `json:"bio"`
}

// LoadRawProfiles decodes a JSON array of scraped profiles.
func LoadRawProfiles(r io.Reader) ([]RawProfile, error) {
	var profiles []RawProfile
	if err := json.NewDecoder(r).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("%w: decoding raw profiles: %w", ErrInvalidInput, err)
	}
	return profiles, nil
}

// LoadCleanRecords decodes a JSON array of already-cleaned records.
// Records without a combined text get one built; every record is validated.
func LoadCleanRecords(r io.Reader) ([]*core.FacultyRecord, error) {
	var records []*core.FacultyRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding clean records: %w", ErrInvalidInput, err)
	}
	for i, record := range records {
		if record == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrInvalidInput, i)
		}
		if record.CombinedText == "" {
			record.Rebuild()
		}
		if err := core.ValidateFacultyRecord(record); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrInvalidRecord, i, err)
		}
	}
	return records, nil
}
