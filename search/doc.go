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


// Package search resolves free-text queries against the faculty catalog.
//
// The Resolver runs an ordered cascade of matching stages. The first stage
// whose result satisfies it ends the cascade:
//
//   - Name: lowercase containment against record names; only a unique hit counts
//   - Keyword: lowercase containment against each record's combined text,
//     all hits returned in catalog order
//   - Semantic: cosine similarity over the whole corpus, hits strictly above
//     the similarity threshold, best first
//   - Fallback: the top few records by similarity regardless of threshold
//
// Before any stage runs the query is trimmed, lowercased and passed through
// the synonym Expander, so "NLP" and "natural language processing" resolve
// identically.
//
// A Resolver holds no mutable state; it may be shared across goroutines.
package search
