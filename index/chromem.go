package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
)

const chromemCollection = "faculty"

var errNoEmbeddingFunc = errors.New("chromem store only accepts precomputed embeddings")

// chromemStore keeps vectors in an in-memory chromem-go collection. Document
// IDs are corpus positions.
type chromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

func newChromemStore() (*chromemStore, error) {
	db := chromem.NewDB()
	// Every document and query carries its own embedding; the collection must
	// never call out to an embedding service.
	noEmbed := func(context.Context, string) ([]float32, error) {
		return nil, errNoEmbeddingFunc
	}
	c, err := db.CreateCollection(chromemCollection, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("creating chromem collection: %w", err)
	}
	return &chromemStore{db: db, collection: c}, nil
}

func (s *chromemStore) add(ctx context.Context, vectors [][]float32) error {
	offset := s.collection.Count()
	docs := make([]chromem.Document, len(vectors))
	for i, v := range vectors {
		docs[i] = chromem.Document{
			ID:        strconv.Itoa(offset + i),
			Embedding: v,
		}
	}
	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding vectors to chromem: %w", err)
	}
	return nil
}

func (s *chromemStore) search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	k = min(k, s.collection.Count())
	if k <= 0 {
		return []Hit{}, nil
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: query,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("querying chromem: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		pos, err := strconv.Atoi(r.ID)
		if err != nil {
			return nil, fmt.Errorf("chromem returned foreign document id %q: %w", r.ID, err)
		}
		score := r.Similarity
		// chromem normalizes on insert; a zero vector becomes NaN
		if math.IsNaN(float64(score)) {
			score = 0
		}
		hits[i] = Hit{Position: pos, Score: score}
	}
	// chromem does not order ties deterministically
	sortHits(hits)
	return hits, nil
}

func (s *chromemStore) len() int {
	return s.collection.Count()
}
