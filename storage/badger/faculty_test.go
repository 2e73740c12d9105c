package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coreID(v uint64) core.ID { return core.ID(v) }

func testRecord(id core.ID, name string, specs ...string) *core.FacultyRecord {
	r := &core.FacultyRecord{
		Id:                 id,
		Name:               name,
		FacultyType:        "Professor",
		Education:          core.NotAvailable,
		Bio:                core.NotAvailable,
		SpecializationList: specs,
		ResearchTags:       specs,
		Email:              core.NotAvailable,
		Phone:              core.NotAvailable,
		Address:            core.NotAvailable,
	}
	r.Rebuild()
	return r
}

func newTestRepository(t *testing.T) *FacultyRepository {
	t.Helper()
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestFacultyRepository_ReplaceAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	records := []*core.FacultyRecord{
		testRecord(300, "Charu Mehta", "cloud computing"),
		testRecord(2, "Bina Rao", "machine learning"),
		testRecord(10, "Ada Kapoor", "computer vision"),
	}
	require.NoError(t, repo.ReplaceFacultyRecords(ctx, records...))

	listed, err := repo.ListFacultyRecords(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []core.ID{2, 10, 300}, []core.ID{listed[0].Id, listed[1].Id, listed[2].Id})
	assert.Equal(t, records[1], listed[0])

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestFacultyRepository_ReplaceIsWholesale(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceFacultyRecords(ctx,
		testRecord(1, "Ada Kapoor"),
		testRecord(2, "Bina Rao"),
	))
	require.NoError(t, repo.ReplaceFacultyRecords(ctx, testRecord(3, "Charu Mehta")))

	listed, err := repo.ListFacultyRecords(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Charu Mehta", listed[0].Name)

	_, err = repo.GetFacultyRecord(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	t.Run("empty replace clears catalog", func(t *testing.T) {
		require.NoError(t, repo.ReplaceFacultyRecords(ctx))
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestFacultyRepository_ReplaceRejectsDuplicates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceFacultyRecords(ctx, testRecord(1, "Ada Kapoor")))

	err := repo.ReplaceFacultyRecords(ctx, testRecord(2, "Bina Rao"), testRecord(2, "Charu Mehta"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// the previous catalog survives a rejected replace
	r, err := repo.GetFacultyRecord(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Kapoor", r.Name)
}

func TestFacultyRepository_Get(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.ReplaceFacultyRecords(ctx,
		testRecord(1, "Ada Kapoor", "robotics"),
		testRecord(2, "Bina Rao"),
	))

	r, err := repo.GetFacultyRecord(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"robotics"}, r.SpecializationList)

	_, err = repo.GetFacultyRecord(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	many, err := repo.GetFacultyRecords(ctx, 2, 99, 1)
	require.NoError(t, err)
	require.Len(t, many, 2)
	assert.Equal(t, core.ID(2), many[0].Id)
	assert.Equal(t, core.ID(1), many[1].Id)
}

func TestFacultyRepository_FindBySpecialization(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.ReplaceFacultyRecords(ctx,
		testRecord(1, "Ada Kapoor", "machine learning", "robotics"),
		testRecord(2, "Bina Rao", "cloud computing"),
		testRecord(3, "Charu Mehta", "deep learning"),
	))

	tests := []struct {
		keyword string
		want    []core.ID
	}{
		{"learning", []core.ID{1, 3}},
		{"CLOUD", []core.ID{2}},
		{"quantum", nil},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			found, err := repo.FindBySpecialization(ctx, tt.keyword)
			require.NoError(t, err)
			var ids []core.ID
			for _, r := range found {
				ids = append(ids, r.Id)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err := repo.FindBySpecialization(ctx, "  ")
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestFacultyRepository_CanceledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListFacultyRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.ReplaceFacultyRecords(ctx), context.Canceled)
}

func TestNewRepository_Persists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	repo, err := NewRepository(dir, nil)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceFacultyRecords(ctx, testRecord(5, "Esha Nair", "iot")))
	require.NoError(t, repo.Close())

	repo, err = NewRepository(dir, nil)
	require.NoError(t, err)
	defer repo.Close()

	r, err := repo.GetFacultyRecord(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Esha Nair", r.Name)
}

func TestFacultyRepository_CloseSharedBackend(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	repo := NewFacultyRepository(backend)
	require.NoError(t, repo.Close())
	assert.False(t, backend.IsClosed())
}
