package services

import (
	"context"
	"fmt"

	"github.com/StormKing969/movie-review-app/internal/metadata"
	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/popularity"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/structures"
)

type Stage string

const (
	StageRecordingView  Stage = "recording_view"
	StageFetchingDetail Stage = "fetching_detail"
	StageFetchingVideo  Stage = "fetching_video"
	StageFetchingImages Stage = "fetching_images"
	StageReady          Stage = "ready"
)

// StageError reports the detail-page stage that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type MovieServiceInterface interface {
	Search(ctx context.Context, query string) ([]models.MovieSummary, error)
	Trending(ctx context.Context, limit int) ([]models.TrendingEntry, error)
	OpenMovie(ctx context.Context, req models.ViewRequest) (*models.MovieDetailBundle, error)
	MovieDetail(ctx context.Context, req models.ViewRequest) (*models.MovieDetailBundle, error)
	RecordView(ctx context.Context, req models.ViewRequest) error
	ViewCount(ctx context.Context, movieID int) int
	TrendingLimit() int
}

type MovieService struct {
	client        metadata.ClientInterface
	store         popularity.StoreInterface
	policy        metadata.TrailerPolicyInterface
	logger        providers.Logger
	imageBaseURL  string
	trendingLimit int
}

func (ms *MovieService) Search(ctx context.Context, query string) ([]models.MovieSummary, error) {
	return ms.client.SearchMovies(ctx, query)
}

// Trending falls back to the configured rail size when limit is not positive.
func (ms *MovieService) Trending(ctx context.Context, limit int) ([]models.TrendingEntry, error) {
	if limit <= 0 {
		limit = ms.trendingLimit
	}
	return ms.store.GetTrending(ctx, limit)
}

func (ms *MovieService) TrendingLimit() int {
	return ms.trendingLimit
}

func (ms *MovieService) RecordView(ctx context.Context, req models.ViewRequest) error {
	return ms.store.RecordView(ctx, req.MovieID, req.PosterPath, req.Title)
}

func (ms *MovieService) ViewCount(ctx context.Context, movieID int) int {
	return ms.store.GetViewCount(ctx, movieID)
}

// OpenMovie counts the view and then assembles everything the detail page shows.
// A failed view write is logged and skipped; any metadata failure aborts.
func (ms *MovieService) OpenMovie(ctx context.Context, req models.ViewRequest) (*models.MovieDetailBundle, error) {
	if err := ms.RecordView(ctx, req); err != nil {
		ms.logger.Warnf(providers.TypeSession, "movie %d: %s failed, continuing: %v", req.MovieID, StageRecordingView, err)
	}
	return ms.MovieDetail(ctx, req)
}

// MovieDetail assembles the detail page without counting a view.
func (ms *MovieService) MovieDetail(ctx context.Context, req models.ViewRequest) (*models.MovieDetailBundle, error) {
	detail, err := ms.client.GetMovieDetail(ctx, req.MovieID)
	if err != nil {
		return nil, ms.fail(req.MovieID, StageFetchingDetail, err)
	}

	title := detail.Title
	if title == "" {
		title = req.Title
	}

	videos, err := ms.client.GetMovieVideos(ctx, req.MovieID)
	if err != nil {
		return nil, ms.fail(req.MovieID, StageFetchingVideo, err)
	}
	trailers := ms.policy.Select(videos, title)

	posters, err := ms.client.GetMovieImages(ctx, req.MovieID)
	if err != nil {
		return nil, ms.fail(req.MovieID, StageFetchingImages, err)
	}

	bundle := &models.MovieDetailBundle{
		Detail:     detail,
		Trailers:   trailers,
		TrailerURL: ms.policy.PrimaryURL(trailers),
	}
	if path := metadata.SelectAlternatePoster(posters); path != "" {
		bundle.AlternatePoster = models.PosterURL(ms.imageBaseURL, path)
	}

	ms.logger.Debugf(providers.TypeSession, "movie %d: %s with %d trailers", req.MovieID, StageReady, len(trailers))
	return bundle, nil
}

func (ms *MovieService) fail(movieID int, stage Stage, err error) error {
	ms.logger.Errorf(providers.TypeSession, "movie %d: %s failed: %v", movieID, stage, err)
	return &StageError{Stage: stage, Err: err}
}

func NewMovieService(conf *structures.Config, client metadata.ClientInterface, store popularity.StoreInterface, policy metadata.TrailerPolicyInterface, logger providers.Logger) MovieServiceInterface {
	return &MovieService{
		client:        client,
		store:         store,
		policy:        policy,
		logger:        logger,
		imageBaseURL:  conf.Metadata.ImageBaseURL,
		trendingLimit: conf.Popularity.TrendingLimit,
	}
}
