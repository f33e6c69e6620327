package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/StormKing969/movie-review-app/internal/models"
)

func renderMovies(w io.Writer, movies []models.MovieSummary, errorMessage, imageBaseURL string) {
	fmt.Fprintln(w, "All Movies")
	if errorMessage != "" {
		fmt.Fprintf(w, "  %s\n", errorMessage)
		return
	}
	if len(movies) == 0 {
		fmt.Fprintln(w, "  no movies found")
		return
	}
	for _, m := range movies {
		lang := m.OriginalLanguage
		if lang == "" {
			lang = "N/A"
		}
		fmt.Fprintf(w, "  [%d] %s  ★ %s • %s • %s\n      %s\n",
			m.ID, m.Title, models.FormatRating(m.VoteAverage), lang, models.ReleaseYear(m.ReleaseDate),
			models.PosterURLPtr(imageBaseURL, m.PosterPath))
	}
}

func renderTrending(w io.Writer, trending []models.TrendingEntry) {
	if len(trending) == 0 {
		return
	}
	fmt.Fprintln(w, "Trending Movies")
	for i, t := range trending {
		fmt.Fprintf(w, "  %d. [%d] %s (%d views)\n", i+1, t.MovieID, t.MovieName, t.Count)
	}
}

func renderDetail(w io.Writer, bundle *models.MovieDetailBundle, viewCount int, imageBaseURL string) {
	d := bundle.Detail
	fmt.Fprintf(w, "%s\n", d.Title)
	fmt.Fprintf(w, "  %s • %s", models.ReleaseYear(d.ReleaseDate), models.RatingLabel(d.Adult))
	if d.Runtime != nil {
		fmt.Fprintf(w, " • %s", models.FormatRuntime(*d.Runtime))
	}
	fmt.Fprintf(w, "  ★ %s/10 (%s)  👁 %d\n", models.FormatRating(d.VoteAverage), models.FormatVoteCount(d.VoteCount), viewCount)

	poster := bundle.AlternatePoster
	if poster == "" {
		poster = models.PosterURLPtr(imageBaseURL, d.PosterPath)
	}
	fmt.Fprintf(w, "  Poster:       %s\n", poster)
	if bundle.TrailerURL != "" {
		fmt.Fprintf(w, "  Trailer:      %s\n", bundle.TrailerURL)
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(w, "  Genres:       %s\n", strings.Join(names, ", "))
	}
	if d.Overview != "" {
		fmt.Fprintf(w, "  Overview:     %s\n", d.Overview)
	}
	fmt.Fprintf(w, "  Release date: %s\n", models.FormatReleaseDate(d.ReleaseDate))
	if d.Status != "" {
		fmt.Fprintf(w, "  Status:       %s\n", d.Status)
	}
	if len(d.SpokenLanguages) > 0 {
		names := make([]string, len(d.SpokenLanguages))
		for i, l := range d.SpokenLanguages {
			names[i] = l.EnglishName
		}
		fmt.Fprintf(w, "  Languages:    %s\n", strings.Join(names, " • "))
	}
	if len(d.ProductionCountries) > 0 {
		names := make([]string, len(d.ProductionCountries))
		for i, c := range d.ProductionCountries {
			names[i] = c.Name
		}
		fmt.Fprintf(w, "  Countries:    %s\n", strings.Join(names, " • "))
	}
	fmt.Fprintf(w, "  Budget:       %s\n", models.FormatMoney(d.Budget))
	fmt.Fprintf(w, "  Revenue:      %s\n", models.FormatMoney(d.Revenue))
	if d.Tagline != "" {
		fmt.Fprintf(w, "  Tagline:      %s\n", d.Tagline)
	}
	if len(d.ProductionCompanies) > 0 {
		names := make([]string, len(d.ProductionCompanies))
		for i, c := range d.ProductionCompanies {
			names[i] = c.Name
		}
		fmt.Fprintf(w, "  Companies:    %s\n", strings.Join(names, " • "))
	}
}

const helpText = `Type to search, or:
  /open <id>   open a movie from the list or trending rail
  /trending    show the trending rail
  /back        return to the movie list
  /quit        exit`
