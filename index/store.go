package index

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

// Hit is one search result: a corpus position and its similarity to the query.
type Hit struct {
	Position int
	Score    float32
}

// vectorStore holds normalized corpus vectors in corpus order.
type vectorStore interface {
	add(ctx context.Context, vectors [][]float32) error
	search(ctx context.Context, query []float32, k int) ([]Hit, error)
	len() int
}

func newStore(kind StoreKind) (vectorStore, error) {
	switch kind {
	case StoreFlat, "":
		return &flatStore{}, nil
	case StoreChromem:
		return newChromemStore()
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStore, kind)
	}
}

// sortHits orders hits by descending score, then ascending position.
func sortHits(hits []Hit) {
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
}

// flatStore scans every vector on each search. Exact, and fast enough for
// corpora of a few thousand records.
type flatStore struct {
	vectors [][]float32
}

func (s *flatStore) add(_ context.Context, vectors [][]float32) error {
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *flatStore) search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hits := make([]Hit, len(s.vectors))
	for i, v := range s.vectors {
		hits[i] = Hit{Position: i, Score: dotProduct(query, v)}
	}
	sortHits(hits)
	return hits[:min(k, len(hits))], nil
}

func (s *flatStore) len() int {
	return len(s.vectors)
}
