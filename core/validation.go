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


package core

import (
	"fmt"
	"strings"
)

// ValidateFacultyRecord validates a FacultyRecord according to domain rules.
//
// Validation rules:
//   - Id must be positive
//   - Text fields must hold a value or NotAvailable, never ""
//   - Specializations and research tags must be non-empty and lowercase
//   - CombinedText must not be empty
//
// NOT validated:
//   - CombinedText freshness (clean datasets may carry their own rendering)
func ValidateFacultyRecord(record *FacultyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFacultyRecord)
	}

	if record.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFacultyRecord, ErrInvalidID)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"name", record.Name},
		{"faculty_type", record.FacultyType},
		{"education", record.Education},
		{"bio", record.Bio},
		{"email", record.Email},
		{"phone", record.Phone},
		{"address", record.Address},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %w: %s", ErrInvalidFacultyRecord, ErrEmptyField, f.name)
		}
	}

	if err := ValidateTags(record.SpecializationList); err != nil {
		return fmt.Errorf("%w: specialization_list: %w", ErrInvalidFacultyRecord, err)
	}
	if err := ValidateTags(record.ResearchTags); err != nil {
		return fmt.Errorf("%w: research_tags: %w", ErrInvalidFacultyRecord, err)
	}

	if record.CombinedText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFacultyRecord, ErrEmptyCombinedText)
	}

	return nil
}

// ValidateTags checks that every tag is non-empty and already lowercase.
func ValidateTags(tags []string) error {
	for i, tag := range tags {
		if tag == "" || tag != strings.ToLower(tag) {
			return fmt.Errorf("%w: index %d %q", ErrInvalidTag, i, tag)
		}
	}
	return nil
}
