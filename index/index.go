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


package index

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/poiesic/facultyfinder/ai"
	"github.com/poiesic/facultyfinder/core"
)

// EmbeddingIndex maps each corpus text to a unit-normalized vector, in corpus
// order, and answers nearest-neighbor queries by inner product.
type EmbeddingIndex struct {
	embedder     ai.Embedder
	store        vectorStore
	dimensions   int
	fingerprints []core.Fingerprint
	storeKind    StoreKind
	logger       *slog.Logger
}

// Build embeds every text and returns a read-only index. Position i of the
// index corresponds to texts[i]. Build fails if texts is empty, if the
// embedder keeps failing after retries, or if it returns inconsistent vectors.
func Build(ctx context.Context, embedder ai.Embedder, texts []string, opts ...Option) (*EmbeddingIndex, error) {
	o := &buildOptions{
		config: *DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(texts) == 0 {
		return nil, ErrEmptyCorpus
	}

	logger := o.logger.With("component", "embedding-index")
	start := time.Now()
	logger.Info("building embedding index",
		"texts", len(texts),
		"batchSize", o.config.BatchSize,
		"concurrency", o.config.Concurrency,
		"store", o.config.Store)

	vectors, err := embedAll(ctx, embedder, texts, o, logger)
	if err != nil {
		return nil, err
	}

	dims := len(vectors[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: text 0", ErrEmptyEmbedding)
	}
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: text %d has %d dimensions, text 0 has %d", ErrDimensionMismatch, i, len(v), dims)
		}
		vectors[i] = NormalizeVector(v)
	}

	store, err := newStore(o.config.Store)
	if err != nil {
		return nil, err
	}
	if err := store.add(ctx, vectors); err != nil {
		return nil, err
	}

	fingerprints := make([]core.Fingerprint, len(texts))
	for i, t := range texts {
		fingerprints[i] = core.FingerprintText(t)
	}

	logger.Info("embedding index built",
		"texts", len(texts),
		"dimensions", dims,
		"elapsed", time.Since(start))

	return &EmbeddingIndex{
		embedder:     embedder,
		store:        store,
		dimensions:   dims,
		fingerprints: fingerprints,
		storeKind:    o.config.Store,
		logger:       logger,
	}, nil
}

// embedAll embeds texts in parallel batches and returns the raw vectors in input order.
func embedAll(ctx context.Context, embedder ai.Embedder, texts []string, o *buildOptions, logger *slog.Logger) ([][]float32, error) {
	cfg := o.config

	pool, err := ants.NewPool(cfg.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("creating embedding pool: %w", err)
	}
	defer pool.Release()

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, cfg.Concurrency)

	var progress *ProgressTracker
	if o.progress != nil {
		progress = NewProgressTracker(o.progress, "Embedding", len(texts), o.reportInterval)
		progress.Start()
		defer progress.Finish()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(texts))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for lo := 0; lo < len(texts); lo += cfg.BatchSize {
		hi := min(lo+cfg.BatchSize, len(texts))
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			batch, err := embedBatch(ctx, embedder, limiter, texts[lo:hi], cfg)
			if err != nil {
				fail(fmt.Errorf("embedding texts %d-%d: %w", lo, hi-1, err))
				return
			}
			// Batches write disjoint ranges
			copy(vectors[lo:hi], batch)
			if progress != nil {
				progress.Increment(hi - lo)
			}
			logger.Debug("embedded batch", "from", lo, "to", hi-1)
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("submitting embedding batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		logger.Error("embedding index build failed", "err", firstErr)
		return nil, firstErr
	}
	return vectors, nil
}

func embedBatch(ctx context.Context, embedder ai.Embedder, limiter *rate.Limiter, texts []string, cfg Config) ([][]float32, error) {
	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		vectors, err = embedder.EmbedTexts(ctx, texts)
		return err
	}, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed after %d attempts: %w", cfg.MaxRetries, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(texts), len(vectors))
	}
	return vectors, nil
}

// EmbedQuery embeds text with the index's embedder and normalizes it the same
// way as the corpus vectors.
func (x *EmbeddingIndex) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	v, err := x.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(v) != x.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", ErrDimensionMismatch, len(v), x.dimensions)
	}
	return NormalizeVector(v), nil
}

// Search returns up to k hits ordered by descending similarity, ties broken
// by corpus position. k larger than the corpus ranks the whole corpus.
func (x *EmbeddingIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if len(vector) != x.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", ErrDimensionMismatch, len(vector), x.dimensions)
	}
	if k <= 0 {
		return []Hit{}, nil
	}
	return x.store.search(ctx, vector, min(k, x.store.len()))
}

// Len returns the number of indexed vectors.
func (x *EmbeddingIndex) Len() int {
	return x.store.len()
}

// Dimensions returns the vector size.
func (x *EmbeddingIndex) Dimensions() int {
	return x.dimensions
}

// Store returns the kind of vector store backing the index.
func (x *EmbeddingIndex) Store() StoreKind {
	return x.storeKind
}

// Fingerprints returns the fingerprint of every indexed text, in index order.
func (x *EmbeddingIndex) Fingerprints() []core.Fingerprint {
	return slices.Clone(x.fingerprints)
}
