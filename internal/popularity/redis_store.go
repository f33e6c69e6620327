package popularity

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
)

// Records are hashes under <prefix>record:<movie id>; <prefix>trending is a sorted set
// of movie ids scored by count.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then return 0 end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'movie_id', ARGV[2], 'count', ARGV[3], 'poster_url', ARGV[4], 'movie_name', ARGV[5])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[2])
return 1
`)

var incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return -1 end
local count = redis.call('HINCRBY', KEYS[1], 'count', 1)
redis.call('ZADD', KEYS[2], count, ARGV[1])
return count
`)

type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Name() string {
	return structures.BackendRedis
}

func (s *RedisStore) recordKey(movieID int) string {
	return s.prefix + "record:" + strconv.Itoa(movieID)
}

func (s *RedisStore) rankKey() string {
	return s.prefix + "trending"
}

func (s *RedisStore) FindByMovieID(ctx context.Context, movieID int) (*models.PopularityRecord, error) {
	fields, err := s.rdb.HGetAll(ctx, s.recordKey(movieID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	rec := recordFromHash(fields)
	return &rec, nil
}

func (s *RedisStore) Create(ctx context.Context, record models.PopularityRecord) error {
	if record.DocumentID == "" {
		record.DocumentID = uuid.NewString()
	}
	created, err := createScript.Run(ctx, s.rdb,
		[]string{s.recordKey(record.MovieID), s.rankKey()},
		record.DocumentID, record.MovieID, record.Count, record.PosterURL, record.MovieName,
	).Int()
	if err != nil {
		return err
	}
	if created == 0 {
		return ErrDuplicate
	}
	return nil
}

func (s *RedisStore) IncrementCount(ctx context.Context, movieID int) (int, error) {
	count, err := incrementScript.Run(ctx, s.rdb,
		[]string{s.recordKey(movieID), s.rankKey()},
		movieID,
	).Int()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, ErrNotFound
	}
	return count, nil
}

// TopByCount reads every member scoring at least the limit-th score so that ties
// straddling the cut are ranked by movie id rather than by redis member order.
func (s *RedisStore) TopByCount(ctx context.Context, limit int) ([]models.PopularityRecord, error) {
	if limit <= 0 {
		return []models.PopularityRecord{}, nil
	}
	top, err := s.rdb.ZRevRangeWithScores(ctx, s.rankKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return []models.PopularityRecord{}, nil
	}

	boundary := strconv.FormatFloat(top[len(top)-1].Score, 'f', -1, 64)
	ids, err := s.rdb.ZRangeByScore(ctx, s.rankKey(), &redis.ZRangeBy{Min: boundary, Max: "+inf"}).Result()
	if err != nil {
		return nil, err
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.prefix+"record:"+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	records := make([]models.PopularityRecord, 0, len(cmds))
	for _, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		records = append(records, recordFromHash(fields))
	}
	return models.RankRecords(records, limit), nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.rdb.ZCard(ctx, s.rankKey()).Result()
	return int(n), err
}

func recordFromHash(fields map[string]string) models.PopularityRecord {
	return models.PopularityRecord{
		DocumentID: fields["id"],
		MovieID:    cast.ToInt(fields["movie_id"]),
		Count:      cast.ToInt(fields["count"]),
		PosterURL:  fields["poster_url"],
		MovieName:  fields["movie_name"],
	}
}

func connectRedis(ctx context.Context, conf structures.RedisConfig) (*RedisStore, func(), error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("ping redis at %s: %w", conf.Addr, err)
	}
	cleanup := func() {
		_ = rdb.Close()
	}
	return NewRedisStore(rdb, conf.KeyPrefix), cleanup, nil
}
