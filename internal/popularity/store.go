package popularity

import (
	"context"
	"errors"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/structures"
)

const (
	opRecordView  = "record_view"
	opViewCount   = "view_count"
	opGetTrending = "trending"
)

type StoreInterface interface {
	RecordView(ctx context.Context, movieID int, posterPath, movieName string) error
	GetViewCount(ctx context.Context, movieID int) int
	GetTrending(ctx context.Context, limit int) ([]models.TrendingEntry, error)
	RecordCount(ctx context.Context) (int, error)
	Backend() string
}

type Store struct {
	backend      DocumentStoreInterface
	imageBaseURL string
	logger       providers.Logger
	metrics      providers.MetricsProviderInterface
}

// RecordView counts one view of a movie. The first view creates the record with
// its poster URL and name; later views only increment the count.
func (s *Store) RecordView(ctx context.Context, movieID int, posterPath, movieName string) error {
	if movieID <= 0 || posterPath == "" {
		s.logger.Warnf(providers.TypePopularity, "movie data is incomplete: id=%d poster_path=%q", movieID, posterPath)
		s.metrics.IncPopularityWrites(models.DataIncompleteFailure.String())
		return nil
	}

	count, err := s.backend.IncrementCount(ctx, movieID)
	if err == nil {
		s.logger.Debugf(providers.TypePopularity, "movie %d count=%d", movieID, count)
		s.metrics.IncPopularityWrites("incremented")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return s.writeFailure(movieID, err)
	}

	err = s.backend.Create(ctx, models.PopularityRecord{
		MovieID:   movieID,
		Count:     1,
		PosterURL: models.PosterURL(s.imageBaseURL, posterPath),
		MovieName: movieName,
	})
	if err == nil {
		s.logger.Debugf(providers.TypePopularity, "movie %d record created", movieID)
		s.metrics.IncPopularityWrites("created")
		return nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return s.writeFailure(movieID, err)
	}

	// lost the create race, the other writer's record exists now
	if _, err := s.backend.IncrementCount(ctx, movieID); err != nil {
		return s.writeFailure(movieID, err)
	}
	s.metrics.IncPopularityWrites("incremented")
	return nil
}

func (s *Store) writeFailure(movieID int, err error) error {
	s.logger.Errorf(providers.TypePopularity, "error updating view count of movie %d: %v", movieID, err)
	s.metrics.IncPopularityWrites("failed")
	return &models.Failure{
		Kind:    models.TransportFailure,
		Op:      opRecordView,
		Message: "Error updating view count",
		Err:     err,
	}
}

// GetViewCount returns 1 for a movie without a record and 0 when the lookup fails.
func (s *Store) GetViewCount(ctx context.Context, movieID int) int {
	rec, err := s.backend.FindByMovieID(ctx, movieID)
	if errors.Is(err, ErrNotFound) {
		return 1
	}
	if err != nil {
		s.logger.Errorf(providers.TypePopularity, "%s of movie %d: %v", opViewCount, movieID, err)
		return 0
	}
	return rec.Count
}

func (s *Store) GetTrending(ctx context.Context, limit int) ([]models.TrendingEntry, error) {
	if limit <= 0 {
		return []models.TrendingEntry{}, nil
	}
	records, err := s.backend.TopByCount(ctx, limit)
	if err != nil {
		s.logger.Errorf(providers.TypePopularity, "error fetching trending movies: %v", err)
		return nil, &models.Failure{
			Kind:    models.TransportFailure,
			Op:      opGetTrending,
			Message: "Error fetching trending movies",
			Err:     err,
		}
	}

	entries := make([]models.TrendingEntry, len(records))
	for i, rec := range records {
		entries[i] = rec.Trending()
	}
	return entries, nil
}

func (s *Store) RecordCount(ctx context.Context) (int, error) {
	return s.backend.Count(ctx)
}

func (s *Store) Backend() string {
	return s.backend.Name()
}

func NewStore(conf *structures.Config, backend DocumentStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) StoreInterface {
	return &Store{
		backend:      backend,
		imageBaseURL: conf.Metadata.ImageBaseURL,
		logger:       logger,
		metrics:      metrics,
	}
}
