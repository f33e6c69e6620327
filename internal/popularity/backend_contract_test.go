package popularity

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// runBackendContract exercises the behaviour every DocumentStoreInterface must share.
func runBackendContract(t *testing.T, s DocumentStoreInterface) {
	t.Helper()
	ctx := context.Background()

	_, err := s.FindByMovieID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.IncrementCount(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Create(ctx, models.PopularityRecord{MovieID: 1, Count: 1, PosterURL: "p1", MovieName: "One"}))
	assert.ErrorIs(t, s.Create(ctx, models.PopularityRecord{MovieID: 1, Count: 1}), ErrDuplicate)

	count, err := s.IncrementCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec, err := s.FindByMovieID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count)
	assert.Equal(t, "p1", rec.PosterURL)
	assert.Equal(t, "One", rec.MovieName)
	assert.NotEmpty(t, rec.DocumentID)

	for _, id := range []int{5, 3, 4} {
		require.NoError(t, s.Create(ctx, models.PopularityRecord{MovieID: id, Count: 2, PosterURL: "p", MovieName: strconv.Itoa(id)}))
	}
	require.NoError(t, s.Create(ctx, models.PopularityRecord{MovieID: 9, Count: 7}))

	top, err := s.TopByCount(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, 9, top[0].MovieID)
	assert.Equal(t, 1, top[1].MovieID)
	assert.Equal(t, 3, top[2].MovieID)

	none, err := s.TopByCount(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestMongoStore_Contract(t *testing.T) {
	uri := os.Getenv("MRA_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MRA_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	coll := client.Database("mra_test").Collection("popularity_" + uuid.NewString())
	defer coll.Drop(context.Background())

	store, err := NewMongoStore(ctx, coll)
	require.NoError(t, err)
	runBackendContract(t, store)
}

func TestRedisStore_Contract(t *testing.T) {
	addr := os.Getenv("MRA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MRA_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(context.Background()).Err())

	prefix := "mra_test:" + uuid.NewString() + ":"
	defer func() {
		keys, _ := rdb.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			rdb.Del(context.Background(), keys...)
		}
	}()

	runBackendContract(t, NewRedisStore(rdb, prefix))
}
