package models

import "strings"

const (
	PosterSizePath    = "/t/p/w500/"
	PlaceholderPoster = "/no-movie.png"
)

// PosterURL builds the displayable poster address for a relative image path.
// Absolute addresses are returned as is and an empty path yields the placeholder.
func PosterURL(imageBaseURL, path string) string {
	if path == "" {
		return PlaceholderPoster
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(imageBaseURL, "/") + PosterSizePath + strings.TrimLeft(path, "/")
}

// PosterURLPtr is PosterURL for the nullable poster_path of listings.
func PosterURLPtr(imageBaseURL string, path *string) string {
	if path == nil {
		return PlaceholderPoster
	}
	return PosterURL(imageBaseURL, *path)
}
