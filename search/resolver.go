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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/poiesic/facultyfinder/catalog"
	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/index"
)

// VectorIndex is the read-only view of an embedding index the resolver needs.
// *index.EmbeddingIndex implements it.
type VectorIndex interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Search(ctx context.Context, vector []float32, k int) ([]index.Hit, error)
	Len() int
	Fingerprints() []core.Fingerprint
}

var _ VectorIndex = (*index.EmbeddingIndex)(nil)

// Match is one resolved record. Score is the cosine similarity for scored
// stages and zero for textual stages.
type Match struct {
	Record   *core.FacultyRecord
	Position int
	Score    float32
}

// Resolution is the outcome of resolving one query.
type Resolution struct {
	QueryID  string
	Query    string
	Expanded string
	Stage    Stage
	Matches  []Match
}

// Records returns the matched records in result order.
func (r *Resolution) Records() []*core.FacultyRecord {
	out := make([]*core.FacultyRecord, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Record
	}
	return out
}

// Resolver runs the matching cascade over a catalog and its embedding index.
type Resolver struct {
	catalog  *catalog.Catalog
	index    VectorIndex
	config   *Config
	expander *Expander
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConfig replaces the default tunables.
func WithConfig(cfg *Config) Option {
	return func(r *Resolver) error {
		if cfg == nil {
			return fmt.Errorf("search config cannot be nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.config = cfg.clone()
		return nil
	}
}

// NewResolver creates a resolver. idx must have been built from cat.Texts().
func NewResolver(cat *catalog.Catalog, idx VectorIndex, opts ...Option) (*Resolver, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	r := &Resolver{
		catalog: cat,
		index:   idx,
		config:  DefaultConfig(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if idx.Len() != cat.Len() {
		return nil, fmt.Errorf("%w: index has %d vectors, catalog has %d records", ErrIndexMismatch, idx.Len(), cat.Len())
	}
	if !slices.Equal(idx.Fingerprints(), cat.Fingerprints()) {
		return nil, fmt.Errorf("%w: combined texts differ or are out of order", ErrIndexMismatch)
	}

	r.expander = NewExpander(r.config.Synonyms)
	r.logger = r.logger.With("component", "resolver")
	return r, nil
}

// Resolve returns the records matching query, in stage-defined order.
// An empty slice is a valid answer.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]*core.FacultyRecord, error) {
	res, err := r.ResolveDetailed(ctx, query)
	if err != nil {
		return nil, err
	}
	return res.Records(), nil
}

// ResolveDetailed resolves query and reports which stage answered it.
func (r *Resolver) ResolveDetailed(ctx context.Context, query string) (*Resolution, error) {
	return r.ResolveWithMonitor(ctx, query, nil)
}

// ResolveWithMonitor resolves query with monitoring.
// The monitor receives callbacks as each stage is evaluated.
func (r *Resolver) ResolveWithMonitor(ctx context.Context, query string, monitor SearchMonitor) (*Resolution, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	res := &Resolution{
		QueryID: uuid.NewString(),
		Query:   query,
		Matches: []Match{},
	}
	logger := r.logger.With("query_id", res.QueryID)
	monitor.Start(res.QueryID, query)

	res.Expanded = r.expander.Expand(query)
	monitor.AfterExpansion(res.Expanded)
	logger.Debug("resolving query", "query", query, "expanded", res.Expanded)

	// Every record contains the empty string; answer nothing instead
	if res.Expanded == "" {
		logger.Debug("empty query, returning no results")
		monitor.Finish(res)
		return res, nil
	}

	finish := func(stage Stage, matches []Match) (*Resolution, error) {
		res.Stage = stage
		res.Matches = matches
		logger.Info("query resolved", "stage", stage, "matches", len(matches))
		monitor.Finish(res)
		return res, nil
	}
	evaluate := func(stage Stage, matches []Match) bool {
		ok := stage.Satisfied(len(matches))
		monitor.StageEvaluated(stage, matches, ok)
		logger.Debug("stage evaluated", "stage", stage, "matches", len(matches), "satisfied", ok)
		return ok
	}

	if m := r.NameMatches(res.Expanded); evaluate(StageName, m) {
		return finish(StageName, m)
	}
	if m := r.KeywordMatches(res.Expanded); evaluate(StageKeyword, m) {
		return finish(StageKeyword, m)
	}

	ranked, err := r.Rank(ctx, res.Expanded)
	if err != nil {
		logger.Error("semantic ranking failed", "err", err)
		return nil, err
	}
	if m := r.SemanticMatches(ranked); evaluate(StageSemantic, m) {
		return finish(StageSemantic, m)
	}
	m := r.FallbackMatches(ranked)
	evaluate(StageFallback, m)
	return finish(StageFallback, m)
}

// NameMatches returns every record whose lowercase name contains query.
// The name stage only accepts the result when exactly one record matches.
func (r *Resolver) NameMatches(query string) []Match {
	return r.textMatches(r.catalog.MatchName(query))
}

// KeywordMatches returns every record whose lowercase combined text contains
// query, in catalog order.
func (r *Resolver) KeywordMatches(query string) []Match {
	return r.textMatches(r.catalog.MatchText(query))
}

// Rank embeds query and scores it against the whole corpus, best first.
func (r *Resolver) Rank(ctx context.Context, query string) ([]Match, error) {
	vector, err := r.index.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	hits, err := r.index.Search(ctx, vector, r.index.Len())
	if err != nil {
		return nil, fmt.Errorf("searching embedding index: %w", err)
	}
	matches := make([]Match, len(hits))
	for i, h := range hits {
		matches[i] = Match{Record: r.catalog.At(h.Position), Position: h.Position, Score: h.Score}
	}
	return matches, nil
}

// SemanticMatches keeps ranked matches scoring strictly above the threshold.
func (r *Resolver) SemanticMatches(ranked []Match) []Match {
	out := []Match{}
	for _, m := range ranked {
		if m.Score > r.config.SimilarityThreshold {
			out = append(out, m)
		}
	}
	return out
}

// FallbackMatches returns the best FallbackCount ranked matches.
func (r *Resolver) FallbackMatches(ranked []Match) []Match {
	return slices.Clone(ranked[:min(r.config.FallbackCount, len(ranked))])
}

func (r *Resolver) textMatches(positions []int) []Match {
	out := make([]Match, len(positions))
	for i, p := range positions {
		out[i] = Match{Record: r.catalog.At(p), Position: p}
	}
	return out
}
