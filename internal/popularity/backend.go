package popularity

import (
	"context"
	"errors"

	"github.com/StormKing969/movie-review-app/internal/models"
)

var (
	ErrNotFound  = errors.New("popularity record not found")
	ErrDuplicate = errors.New("popularity record already exists")
)

// DocumentStoreInterface is the document-store contract every backend implements.
// The unique key of a record is its movie id.
type DocumentStoreInterface interface {
	Name() string
	FindByMovieID(ctx context.Context, movieID int) (*models.PopularityRecord, error)
	Create(ctx context.Context, record models.PopularityRecord) error
	// IncrementCount atomically adds one to an existing record and returns the new count.
	IncrementCount(ctx context.Context, movieID int) (int, error)
	// TopByCount orders by count descending, ties by movie id ascending.
	TopByCount(ctx context.Context, limit int) ([]models.PopularityRecord, error)
	Count(ctx context.Context) (int, error)
}
