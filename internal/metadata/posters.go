package metadata

import "github.com/StormKing969/movie-review-app/internal/models"

// SelectAlternatePoster returns the file path of the most voted poster.
// Entries without a path are skipped and the earliest poster wins a tie.
func SelectAlternatePoster(posters []models.PosterEntry) string {
	best := -1
	for i, p := range posters {
		if p.FilePath == "" {
			continue
		}
		if best < 0 || p.VoteCount > posters[best].VoteCount {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return posters[best].FilePath
}
