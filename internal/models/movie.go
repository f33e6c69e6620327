package models

// MovieSummary is one entry of a search or discover listing.
type MovieSummary struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	PosterPath       *string  `json:"poster_path"`
	ReleaseDate      *string  `json:"release_date"`
	VoteAverage      *float64 `json:"vote_average"`
	OriginalLanguage string   `json:"original_language"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCountry struct {
	ISO3166 string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

type ProductionCompany struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

type SpokenLanguage struct {
	ISO639      string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// MovieDetail is fetched on every detail-page visit and never cached.
type MovieDetail struct {
	MovieSummary
	Overview            string              `json:"overview"`
	BackdropPath        *string             `json:"backdrop_path"`
	Runtime             *int                `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	VoteCount           int                 `json:"vote_count"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Tagline             string              `json:"tagline"`
	Status              string              `json:"status"`
	Adult               bool                `json:"adult"`
}

type VideoEntry struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	Size        int    `json:"size"`
	Language    string `json:"iso_639_1"`
	PublishedAt string `json:"published_at"`
}

type PosterEntry struct {
	FilePath    string  `json:"file_path"`
	VoteCount   int     `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Language    *string `json:"iso_639_1"`
}

// ViewRequest carries what a card click knows about a movie before the detail fetch.
type ViewRequest struct {
	MovieID    int
	PosterPath string
	Title      string
}

// MovieDetailBundle is everything the detail page renders.
type MovieDetailBundle struct {
	Detail          *MovieDetail `json:"detail"`
	Trailers        []VideoEntry `json:"trailers"`
	TrailerURL      string       `json:"trailer_url,omitempty"`
	AlternatePoster string       `json:"alternate_poster,omitempty"`
}
