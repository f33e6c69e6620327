package popularity

import (
	"context"
	"fmt"
	"time"

	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/structures"
)

const connectTimeout = 10 * time.Second

// NewDocumentStore opens the configured backend. The cleanup func releases its connections.
func NewDocumentStore(conf *structures.Config, logger providers.Logger) (DocumentStoreInterface, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch conf.Popularity.Backend {
	case structures.BackendMongo:
		store, cleanup, err := connectMongo(ctx, conf.Popularity.Mongo)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(providers.TypePopularity, "using mongo collection %s.%s", conf.Popularity.Mongo.Database, conf.Popularity.Mongo.Collection)
		return store, cleanup, nil
	case structures.BackendRedis:
		store, cleanup, err := connectRedis(ctx, conf.Popularity.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(providers.TypePopularity, "using redis at %s", conf.Popularity.Redis.Addr)
		return store, cleanup, nil
	case structures.BackendMemory, "":
		logger.Infof(providers.TypePopularity, "using in-memory store")
		return NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown popularity backend %q", conf.Popularity.Backend)
	}
}
