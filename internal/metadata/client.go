package metadata

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/structures"
	json "github.com/goccy/go-json"
)

const (
	OpSearch = "search"
	OpDetail = "detail"
	OpVideos = "videos"
	OpImages = "images"
)

var genericMessages = map[string]string{
	OpSearch: "Failed to fetch movies",
	OpDetail: "Failed to fetch movie details",
	OpVideos: "Failed to fetch movie videos",
	OpImages: "Failed to fetch movie images",
}

type ClientInterface interface {
	SearchMovies(ctx context.Context, query string) ([]models.MovieSummary, error)
	GetMovieDetail(ctx context.Context, id int) (*models.MovieDetail, error)
	GetMovieVideos(ctx context.Context, id int) ([]models.VideoEntry, error)
	GetMovieImages(ctx context.Context, id int) ([]models.PosterEntry, error)
}

type TmdbClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

// envelope holds the fields either failure convention may put in a 2xx body.
type envelope struct {
	Response      *bool  `json:"response"`
	Error         string `json:"Error"`
	Success       *bool  `json:"success"`
	StatusMessage string `json:"status_message"`
}

type listResponse struct {
	Page    int                   `json:"page"`
	Results []models.MovieSummary `json:"results"`
}

type videosResponse struct {
	ID      int                 `json:"id"`
	Results []models.VideoEntry `json:"results"`
}

type imagesResponse struct {
	ID      int                  `json:"id"`
	Posters []models.PosterEntry `json:"posters"`
}

// SearchMovies searches by title, or lists popular movies when the trimmed query is empty.
func (c *TmdbClient) SearchMovies(ctx context.Context, query string) ([]models.MovieSummary, error) {
	query = strings.TrimSpace(query)
	path := "/discover/movie"
	params := url.Values{"sort_by": {"popularity.desc"}}
	if query != "" {
		path = "/search/movie"
		params = url.Values{"query": {query}}
	}

	var resp listResponse
	if err := c.get(ctx, OpSearch, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []models.MovieSummary{}, nil
	}
	return resp.Results, nil
}

func (c *TmdbClient) GetMovieDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	if err := c.get(ctx, OpDetail, "/movie/"+strconv.Itoa(id), nil, &detail); err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, &models.Failure{Kind: models.ApplicationFailure, Op: OpDetail, Message: genericMessages[OpDetail]}
	}
	return &detail, nil
}

func (c *TmdbClient) GetMovieVideos(ctx context.Context, id int) ([]models.VideoEntry, error) {
	var resp videosResponse
	if err := c.get(ctx, OpVideos, "/movie/"+strconv.Itoa(id)+"/videos", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []models.VideoEntry{}, nil
	}
	return resp.Results, nil
}

func (c *TmdbClient) GetMovieImages(ctx context.Context, id int) ([]models.PosterEntry, error) {
	var resp imagesResponse
	if err := c.get(ctx, OpImages, "/movie/"+strconv.Itoa(id)+"/images", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Posters == nil {
		return []models.PosterEntry{}, nil
	}
	return resp.Posters, nil
}

func (c *TmdbClient) get(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		c.metrics.ObserveUpstream(op, outcome, time.Since(start))
	}()

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		outcome = models.TransportFailure.String()
		return &models.Failure{Kind: models.TransportFailure, Op: op, Message: genericMessages[op], Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = models.TransportFailure.String()
		c.logger.Errorf(providers.TypeMetadata, "%s %s: %v", op, path, err)
		return &models.Failure{Kind: models.TransportFailure, Op: op, Message: genericMessages[op], Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = models.TransportFailure.String()
		return &models.Failure{Kind: models.TransportFailure, Op: op, Message: genericMessages[op], Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = models.TransportFailure.String()
		c.logger.Warnf(providers.TypeMetadata, "%s %s: status %d", op, path, resp.StatusCode)
		return &models.Failure{
			Kind:       models.TransportFailure,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    genericMessages[op],
		}
	}

	if f := applicationFailure(op, body); f != nil {
		outcome = models.ApplicationFailure.String()
		c.logger.Warnf(providers.TypeMetadata, "%s %s: %s", op, path, f.Message)
		return f
	}

	if err := json.Unmarshal(body, out); err != nil {
		outcome = models.ApplicationFailure.String()
		c.logger.Errorf(providers.TypeMetadata, "%s %s: decode: %v", op, path, err)
		return &models.Failure{Kind: models.ApplicationFailure, Op: op, Message: genericMessages[op], Err: err}
	}

	c.logger.Debugf(providers.TypeMetadata, "%s %s: ok in %s", op, path, time.Since(start))
	return nil
}

// applicationFailure reports a failure carried inside a successful response.
func applicationFailure(op string, body []byte) *models.Failure {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}

	message := ""
	switch {
	case env.Response != nil && !*env.Response:
		message = env.Error
	case env.Success != nil && !*env.Success:
		message = env.StatusMessage
	default:
		return nil
	}
	if message == "" {
		message = genericMessages[op]
	}
	return &models.Failure{Kind: models.ApplicationFailure, Op: op, Message: message}
}

func NewTmdbClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &TmdbClient{
		baseURL:    strings.TrimRight(conf.Metadata.BaseURL, "/"),
		token:      conf.Metadata.Token,
		httpClient: &http.Client{Timeout: conf.Metadata.Timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

