package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/facultyfinder/ai/mock"
	"github.com/poiesic/facultyfinder/catalog"
	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	records  []*core.FacultyRecord
	catalog  *catalog.Catalog
	index    *index.EmbeddingIndex
	embedder *mock.MockEmbedder
}

func newRecord(id core.ID, name string, specs ...string) *core.FacultyRecord {
	r := &core.FacultyRecord{
		Id:                 id,
		Name:               name,
		FacultyType:        "Professor",
		Education:          core.NotAvailable,
		Bio:                core.NotAvailable,
		SpecializationList: specs,
		Email:              core.NotAvailable,
		Phone:              core.NotAvailable,
		Address:            core.NotAvailable,
	}
	r.Rebuild()
	return r
}

// newFixture builds a six-record corpus whose embeddings are fixed 4-dim
// vectors, plus query vectors for the semantic and fallback cases.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	records := []*core.FacultyRecord{
		newRecord(1, "Dr. Ada Kapoor", "cloud computing", "distributed systems"),
		newRecord(2, "Bina Rao", "machine learning"),
		newRecord(3, "Charu Mehta", "cloud computing"),
		newRecord(4, "Adarsh Jain", "computer vision"),
		newRecord(5, "Dev Patel", "natural language processing"),
		newRecord(6, "Esha Nair", "cloud computing security"),
	}
	vectors := [][]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{1, 0.1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
		{0.9, 0, 0.1, 0},
	}
	table := map[string][]float32{
		"deep networks":        {0, 0.9, 0.5, 0},
		"quantum cryptography": {-1, -1, -1, -1},
	}
	for i, r := range records {
		table[r.CombinedText] = vectors[i]
	}

	m := mock.NewMockEmbedder()
	m.Dimensions = 4
	m.WithVectors(table)

	cat, err := catalog.New(records)
	require.NoError(t, err)
	idx, err := index.Build(context.Background(), m, cat.Texts())
	require.NoError(t, err)

	return &fixture{records: records, catalog: cat, index: idx, embedder: m}
}

func (f *fixture) resolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	r, err := NewResolver(f.catalog, f.index, opts...)
	require.NoError(t, err)
	return r
}

func ids(records []*core.FacultyRecord) []core.ID {
	out := make([]core.ID, len(records))
	for i, r := range records {
		out[i] = r.Id
	}
	return out
}

func TestNewResolver(t *testing.T) {
	f := newFixture(t)

	t.Run("valid configuration", func(t *testing.T) {
		r, err := NewResolver(f.catalog, f.index)
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("with custom logger", func(t *testing.T) {
		r, err := NewResolver(f.catalog, f.index, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		r, err := NewResolver(f.catalog, f.index, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewResolver(nil, f.index)
		assert.Equal(t, ErrCatalogRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewResolver(f.catalog, nil)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FallbackCount = 0
		_, err := NewResolver(f.catalog, f.index, WithConfig(cfg))
		assert.ErrorContains(t, err, "FallbackCount")

		_, err = NewResolver(f.catalog, f.index, WithConfig(nil))
		assert.Error(t, err)
	})

	t.Run("index size mismatch", func(t *testing.T) {
		idx, err := index.Build(context.Background(), f.embedder, f.catalog.Texts()[:3])
		require.NoError(t, err)
		_, err = NewResolver(f.catalog, idx)
		assert.ErrorIs(t, err, ErrIndexMismatch)
	})

	t.Run("index order mismatch", func(t *testing.T) {
		texts := f.catalog.Texts()
		texts[0], texts[1] = texts[1], texts[0]
		idx, err := index.Build(context.Background(), f.embedder, texts)
		require.NoError(t, err)
		_, err = NewResolver(f.catalog, idx)
		assert.ErrorIs(t, err, ErrIndexMismatch)
	})
}

func TestResolve_NameStage(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	ctx := context.Background()

	t.Run("unique name hit returns singleton", func(t *testing.T) {
		res, err := r.ResolveDetailed(ctx, "Ada Kapoor")
		require.NoError(t, err)
		assert.Equal(t, StageName, res.Stage)
		assert.Equal(t, []core.ID{1}, ids(res.Records()))
		assert.Equal(t, float32(0), res.Matches[0].Score)
	})

	t.Run("ambiguous name falls through to keyword", func(t *testing.T) {
		res, err := r.ResolveDetailed(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, StageKeyword, res.Stage)
		assert.Equal(t, []core.ID{1, 4}, ids(res.Records()))
	})

	t.Run("partial unique name", func(t *testing.T) {
		records, err := r.Resolve(ctx, "MEHTA")
		require.NoError(t, err)
		assert.Equal(t, []core.ID{3}, ids(records))
	})
}

func TestResolve_KeywordStage(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	ctx := context.Background()

	t.Run("all substring hits in catalog order", func(t *testing.T) {
		res, err := r.ResolveDetailed(ctx, "cloud computing")
		require.NoError(t, err)
		assert.Equal(t, StageKeyword, res.Stage)
		assert.Equal(t, []core.ID{1, 3, 6}, ids(res.Records()))
	})

	t.Run("bare substring counts", func(t *testing.T) {
		res, err := r.ResolveDetailed(ctx, "vision")
		require.NoError(t, err)
		assert.Equal(t, StageKeyword, res.Stage)
		assert.Equal(t, []core.ID{4}, ids(res.Records()))
	})

	t.Run("result is exactly the containing set", func(t *testing.T) {
		res, err := r.ResolveDetailed(ctx, "Computing")
		require.NoError(t, err)
		var want []core.ID
		for _, rec := range f.records {
			if containsFold(rec.CombinedText, "computing") {
				want = append(want, rec.Id)
			}
		}
		assert.Equal(t, want, ids(res.Records()))
	})

	t.Run("keyword stage does not embed", func(t *testing.T) {
		before := f.embedder.CallCount()
		_, err := r.Resolve(ctx, "machine learning")
		require.NoError(t, err)
		assert.Equal(t, before, f.embedder.CallCount())
	})
}

func TestResolve_SynonymExpansion(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	ctx := context.Background()

	abbr, err := r.ResolveDetailed(ctx, "NLP")
	require.NoError(t, err)
	full, err := r.ResolveDetailed(ctx, "natural language processing")
	require.NoError(t, err)

	assert.Equal(t, "natural language processing", abbr.Expanded)
	assert.Equal(t, full.Stage, abbr.Stage)
	assert.Equal(t, ids(full.Records()), ids(abbr.Records()))
	assert.Equal(t, []core.ID{5}, ids(abbr.Records()))
}

func TestResolve_SemanticStage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("scores above threshold, descending", func(t *testing.T) {
		res, err := f.resolver(t).ResolveDetailed(ctx, "deep networks")
		require.NoError(t, err)
		assert.Equal(t, StageSemantic, res.Stage)
		assert.Equal(t, []core.ID{2, 4}, ids(res.Records()))
		for _, m := range res.Matches {
			assert.Greater(t, m.Score, float32(0.35))
		}
		assert.Greater(t, res.Matches[0].Score, res.Matches[1].Score)
	})

	t.Run("threshold is strict and configurable", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SimilarityThreshold = 0.5
		res, err := f.resolver(t, WithConfig(cfg)).ResolveDetailed(ctx, "deep networks")
		require.NoError(t, err)
		assert.Equal(t, StageSemantic, res.Stage)
		assert.Equal(t, []core.ID{2}, ids(res.Records()))
	})
}

func TestResolve_FallbackStage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("top five regardless of threshold", func(t *testing.T) {
		res, err := f.resolver(t).ResolveDetailed(ctx, "quantum cryptography")
		require.NoError(t, err)
		assert.Equal(t, StageFallback, res.Stage)
		require.Len(t, res.Matches, 5)
		// four exact ties at -0.5 keep catalog order, then the lower scores
		assert.Equal(t, []core.ID{1, 2, 4, 5, 3}, ids(res.Records()))
		for i := 1; i < len(res.Matches); i++ {
			assert.GreaterOrEqual(t, res.Matches[i-1].Score, res.Matches[i].Score)
		}
	})

	t.Run("fallback count configurable", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FallbackCount = 2
		res, err := f.resolver(t, WithConfig(cfg)).ResolveDetailed(ctx, "quantum cryptography")
		require.NoError(t, err)
		assert.Equal(t, []core.ID{1, 2}, ids(res.Records()))
	})

	t.Run("corpus smaller than fallback count", func(t *testing.T) {
		records := []*core.FacultyRecord{
			newRecord(1, "Ada Kapoor", "robotics"),
			newRecord(2, "Bina Rao", "databases"),
		}
		cat, err := catalog.New(records)
		require.NoError(t, err)
		idx, err := index.Build(ctx, mock.NewMockEmbedder(), cat.Texts())
		require.NoError(t, err)
		cfg := DefaultConfig()
		cfg.SimilarityThreshold = 1
		r, err := NewResolver(cat, idx, WithConfig(cfg))
		require.NoError(t, err)

		res, err := r.ResolveDetailed(ctx, "zzz unmatched")
		require.NoError(t, err)
		assert.Equal(t, StageFallback, res.Stage)
		assert.Len(t, res.Matches, 2)
	})
}

func TestResolve_Concurrent(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	ctx := context.Background()

	queries := []struct {
		query string
		stage Stage
		want  []core.ID
	}{
		{"Ada Kapoor", StageName, []core.ID{1}},
		{"cloud computing", StageKeyword, []core.ID{1, 3, 6}},
		{"deep networks", StageSemantic, []core.ID{2, 4}},
		{"quantum cryptography", StageFallback, []core.ID{1, 2, 4, 5, 3}},
	}

	const workers = 32
	type outcome struct {
		stage Stage
		ids   []core.ID
		err   error
	}
	results := make([][]outcome, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[w] = make([]outcome, len(queries))
			for i, q := range queries {
				res, err := r.ResolveDetailed(ctx, q.query)
				if err != nil {
					results[w][i] = outcome{err: err}
					continue
				}
				results[w][i] = outcome{stage: res.Stage, ids: ids(res.Records())}
			}
		}()
	}
	wg.Wait()

	for w, got := range results {
		for i, q := range queries {
			require.NoError(t, got[i].err, "worker %d query %q", w, q.query)
			assert.Equal(t, q.stage, got[i].stage, "worker %d query %q", w, q.query)
			assert.Equal(t, q.want, got[i].ids, "worker %d query %q", w, q.query)
		}
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	before := f.embedder.CallCount()

	for _, q := range []string{"", "   ", "\t\n"} {
		res, err := r.ResolveDetailed(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, StageNone, res.Stage)
		assert.Empty(t, res.Matches)
		assert.NotNil(t, res.Matches)
	}
	assert.Equal(t, before, f.embedder.CallCount())
}

func TestResolve_Idempotent(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	ctx := context.Background()

	for _, q := range []string{"ada kapoor", "cloud computing", "deep networks", "quantum cryptography"} {
		first, err := r.Resolve(ctx, q)
		require.NoError(t, err)
		second, err := r.Resolve(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(second), q)
	}
}

type failingIndex struct {
	VectorIndex
	err error
}

func (f *failingIndex) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, f.err
}

func TestResolve_EmbeddingErrorPropagates(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("index corrupted")
	r, err := NewResolver(f.catalog, &failingIndex{VectorIndex: f.index, err: boom})
	require.NoError(t, err)

	// textual stages still work
	records, err := r.Resolve(context.Background(), "cloud computing")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = r.Resolve(context.Background(), "deep networks")
	assert.ErrorIs(t, err, boom)
}

type recordingMonitor struct {
	queryID  string
	expanded string
	stages   []Stage
	accepted []bool
	final    *Resolution
}

func (m *recordingMonitor) Start(queryID, _ string) { m.queryID = queryID }

func (m *recordingMonitor) AfterExpansion(e string) { m.expanded = e }

func (m *recordingMonitor) StageEvaluated(s Stage, _ []Match, ok bool) {
	m.stages = append(m.stages, s)
	m.accepted = append(m.accepted, ok)
}

func (m *recordingMonitor) Finish(res *Resolution) { m.final = res }

func TestResolveWithMonitor(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)
	ctx := context.Background()

	tests := []struct {
		query    string
		stages   []Stage
		accepted []bool
	}{
		{"ada kapoor", []Stage{StageName}, []bool{true}},
		{"ada", []Stage{StageName, StageKeyword}, []bool{false, true}},
		{"deep networks", []Stage{StageName, StageKeyword, StageSemantic}, []bool{false, false, true}},
		{"quantum cryptography", []Stage{StageName, StageKeyword, StageSemantic, StageFallback}, []bool{false, false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m := &recordingMonitor{}
			res, err := r.ResolveWithMonitor(ctx, tt.query, m)
			require.NoError(t, err)
			assert.Equal(t, tt.stages, m.stages)
			assert.Equal(t, tt.accepted, m.accepted)
			assert.Same(t, res, m.final)
			assert.Equal(t, res.QueryID, m.queryID)
			assert.NotEmpty(t, m.queryID)
			assert.Equal(t, tt.query, m.expanded)
		})
	}
}

func TestResolver_StagesInIsolation(t *testing.T) {
	f := newFixture(t)
	r := f.resolver(t)

	assert.Len(t, r.NameMatches("ada"), 2)
	assert.Len(t, r.KeywordMatches("professor"), 6)

	ranked, err := r.Rank(context.Background(), "deep networks")
	require.NoError(t, err)
	assert.Len(t, ranked, 6)
	assert.Len(t, r.SemanticMatches(ranked), 2)
	assert.Len(t, r.FallbackMatches(ranked), 5)
	assert.Empty(t, r.FallbackMatches(nil))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
