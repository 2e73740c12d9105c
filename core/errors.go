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

import "errors"

// Domain validation errors
var (
	// ErrInvalidFacultyRecord indicates a FacultyRecord failed validation.
	ErrInvalidFacultyRecord = errors.New("invalid faculty record")

	// ErrInvalidID indicates a record carries the zero ID.
	ErrInvalidID = errors.New("faculty id must be positive")

	// ErrEmptyField indicates a text field is empty instead of holding a value or the sentinel.
	ErrEmptyField = errors.New("text field cannot be empty")

	// ErrEmptyCombinedText indicates the combined text was never built.
	ErrEmptyCombinedText = errors.New("combined text cannot be empty")

	// ErrInvalidTag indicates a specialization or research tag is empty or not lowercase.
	ErrInvalidTag = errors.New("tags must be non-empty lowercase strings")
)
