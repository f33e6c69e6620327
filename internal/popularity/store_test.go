package popularity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/StormKing969/movie-review-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(backend DocumentStoreInterface) (StoreInterface, *testutil.MockLogger, *testutil.MockMetrics) {
	conf := &structures.Config{Metadata: structures.MetadataConfig{ImageBaseURL: "https://image.tmdb.org"}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	return NewStore(conf, backend, logger, metrics), logger, metrics
}

// failingBackend fails every call with err.
type failingBackend struct {
	err error
}

func (f *failingBackend) Name() string { return "failing" }
func (f *failingBackend) FindByMovieID(context.Context, int) (*models.PopularityRecord, error) {
	return nil, f.err
}
func (f *failingBackend) Create(context.Context, models.PopularityRecord) error { return f.err }
func (f *failingBackend) IncrementCount(context.Context, int) (int, error)      { return 0, f.err }
func (f *failingBackend) TopByCount(context.Context, int) ([]models.PopularityRecord, error) {
	return nil, f.err
}
func (f *failingBackend) Count(context.Context) (int, error) { return 0, f.err }

// racingBackend simulates another writer creating the record between the
// increment miss and the create.
type racingBackend struct {
	*MemoryStore
	once sync.Once
}

func (r *racingBackend) IncrementCount(ctx context.Context, movieID int) (int, error) {
	missed := false
	r.once.Do(func() {
		missed = true
		_ = r.MemoryStore.Create(ctx, models.PopularityRecord{MovieID: movieID, Count: 1, PosterURL: "other", MovieName: "other"})
	})
	if missed {
		return 0, ErrNotFound
	}
	return r.MemoryStore.IncrementCount(ctx, movieID)
}

func TestStore_FirstAndSecondView(t *testing.T) {
	ctx := context.Background()
	store, _, metrics := newTestStore(NewMemoryStore())

	require.NoError(t, store.RecordView(ctx, 27205, "/abc.jpg", "Inception"))
	assert.Equal(t, 1, store.GetViewCount(ctx, 27205))

	require.NoError(t, store.RecordView(ctx, 27205, "/abc.jpg", "Inception"))
	assert.Equal(t, 2, store.GetViewCount(ctx, 27205))

	trending, err := store.GetTrending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, models.TrendingEntry{
		MovieID:   27205,
		Count:     2,
		PosterURL: "https://image.tmdb.org/t/p/w500/abc.jpg",
		MovieName: "Inception",
	}, trending[0])
	assert.Equal(t, []string{"created", "incremented"}, metrics.PopularityWrites)
}

func TestStore_RepeatedViewsKeepPosterAndName(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()
	store, _, _ := newTestStore(backend)

	require.NoError(t, store.RecordView(ctx, 155, "/dark.jpg", "The Dark Knight"))
	for i := 0; i < 6; i++ {
		require.NoError(t, store.RecordView(ctx, 155, "/other.jpg", "Renamed"))
	}

	rec, err := backend.FindByMovieID(ctx, 155)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.Count)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/dark.jpg", rec.PosterURL)
	assert.Equal(t, "The Dark Knight", rec.MovieName)
}

func TestStore_AbsolutePosterKeptVerbatim(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()
	store, _, _ := newTestStore(backend)

	require.NoError(t, store.RecordView(ctx, 1, "https://image.tmdb.org/t/p/w500/x.jpg", "X"))
	rec, err := backend.FindByMovieID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/x.jpg", rec.PosterURL)
}

func TestStore_TrendingIsCappedAndOrdered(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(NewMemoryStore())

	views := map[int]int{10: 4, 11: 9, 12: 1, 13: 6, 14: 6, 15: 2, 16: 8, 17: 3}
	for id, n := range views {
		for i := 0; i < n; i++ {
			require.NoError(t, store.RecordView(ctx, id, "/p.jpg", "m"))
		}
	}

	trending, err := store.GetTrending(ctx, 5)
	require.NoError(t, err)
	require.Len(t, trending, 5)

	ids := make([]int, len(trending))
	for i, e := range trending {
		ids[i] = e.MovieID
	}
	assert.Equal(t, []int{11, 16, 13, 14, 10}, ids)
	for i := 1; i < len(trending); i++ {
		assert.GreaterOrEqual(t, trending[i-1].Count, trending[i].Count)
	}

	empty, err := store.GetTrending(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_UnseenMovieCountsAsOne(t *testing.T) {
	store, _, _ := newTestStore(NewMemoryStore())
	assert.Equal(t, 1, store.GetViewCount(context.Background(), 999))
}

func TestStore_IncompleteDataIsNoOp(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()
	store, logger, metrics := newTestStore(backend)

	assert.NoError(t, store.RecordView(ctx, 0, "/p.jpg", "No id"))
	assert.NoError(t, store.RecordView(ctx, 42, "", "No poster"))

	n, _ := backend.Count(ctx)
	assert.Equal(t, 0, n)
	assert.True(t, logger.HasLog("warn", "movie data is incomplete"))
	assert.Equal(t, []string{"data_incomplete", "data_incomplete"}, metrics.PopularityWrites)
}

func TestStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection reset")
	store, logger, _ := newTestStore(&failingBackend{err: cause})

	err := store.RecordView(ctx, 1, "/p.jpg", "m")
	var f *models.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, models.TransportFailure, f.Kind)
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, 0, store.GetViewCount(ctx, 1))

	_, err = store.GetTrending(ctx, 5)
	assert.ErrorIs(t, err, cause)
	assert.True(t, logger.HasLog("error", "connection reset"))
}

func TestStore_CreateRaceFallsBackToIncrement(t *testing.T) {
	ctx := context.Background()
	backend := &racingBackend{MemoryStore: NewMemoryStore()}
	store, _, _ := newTestStore(backend)

	require.NoError(t, store.RecordView(ctx, 7, "/p.jpg", "mine"))
	assert.Equal(t, 2, store.GetViewCount(ctx, 7))
}

func TestStore_ConcurrentViewsAreNotLost(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.RecordView(ctx, 27205, "/abc.jpg", "Inception")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.GetViewCount(ctx, 27205))
}
