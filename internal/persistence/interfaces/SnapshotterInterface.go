package interfaces

import "github.com/StormKing969/movie-review-app/internal/models"

// SnapshotterInterface is implemented by stores whose contents live in process memory.
type SnapshotterInterface interface {
	Snapshot() *models.PopularitySnapshot
	Restore(snap *models.PopularitySnapshot)
}
