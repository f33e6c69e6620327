package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRuntime(t *testing.T) {
	assert.Equal(t, "2h 28m", FormatRuntime(148))
	assert.Equal(t, "0h 45m", FormatRuntime(45))
}

func TestFormatVoteCount(t *testing.T) {
	assert.Equal(t, "950", FormatVoteCount(950))
	assert.Equal(t, "1.2K", FormatVoteCount(1234))
	assert.Equal(t, "3.4M", FormatVoteCount(3400000))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$500", FormatMoney(500))
	assert.Equal(t, "$12.5 K", FormatMoney(12500))
	assert.Equal(t, "$160.0 M", FormatMoney(160000000))
}

func TestFormatRating(t *testing.T) {
	avg := 8.369
	zero := 0.0
	assert.Equal(t, "8.4", FormatRating(&avg))
	assert.Equal(t, "N/A", FormatRating(&zero))
	assert.Equal(t, "N/A", FormatRating(nil))
}

func TestReleaseDates(t *testing.T) {
	date := "2010-07-15"
	bad := "soon"
	assert.Equal(t, "2010", ReleaseYear(&date))
	assert.Equal(t, "N/A", ReleaseYear(nil))
	assert.Equal(t, "July 15, 2010", FormatReleaseDate(&date))
	assert.Equal(t, "N/A", FormatReleaseDate(&bad))
}

func TestRatingLabel(t *testing.T) {
	assert.Equal(t, "PG-13", RatingLabel(false))
	assert.Equal(t, "R", RatingLabel(true))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "inception", Slug("Inception"))
	assert.Equal(t, "spider-man-no-way-home", Slug("Spider-Man: No Way Home"))
	assert.Equal(t, "wall-e", Slug("  WALL·E  "))
	assert.Equal(t, "", Slug("!!!"))
}

func TestPosterURL(t *testing.T) {
	base := "https://image.tmdb.org"
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", PosterURL(base, "/abc.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", PosterURL(base+"/", "abc.jpg"))
	assert.Equal(t, "https://cdn.example.com/x.jpg", PosterURL(base, "https://cdn.example.com/x.jpg"))
	assert.Equal(t, PlaceholderPoster, PosterURL(base, ""))
	assert.Equal(t, PlaceholderPoster, PosterURLPtr(base, nil))
}
