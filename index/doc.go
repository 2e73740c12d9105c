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


// Package index builds and queries the dense embedding index over the
// faculty corpus.
//
// An EmbeddingIndex is built exactly once from the catalog's combined texts:
// texts are embedded in parallel batches (ants worker pool, rate limited,
// retried with exponential backoff), every vector is L2-normalized, and the
// vectors are stored in corpus order. Search is exact inner product over the
// normalized vectors, which equals cosine similarity; ties are broken by
// corpus position so rankings are deterministic.
//
// Two vector stores are available:
//
//   - StoreFlat: brute-force scan over a contiguous slice (default)
//   - StoreChromem: an in-memory chromem-go collection
//
// Queries must be embedded through EmbedQuery so they use the same model and
// the same normalization as the corpus.
//
// After Build returns, an EmbeddingIndex is read-only and safe for
// concurrent use.
package index
