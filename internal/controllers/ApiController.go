package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/services"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.MovieServiceInterface
	cache   providers.CacheProviderInterface
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

type viewCountResponse struct {
	MovieID int `json:"movie_id"`
	Count   int `json:"count"`
}

type recordViewRequest struct {
	PosterPath string `json:"poster_path"`
	MovieName  string `json:"movie_name"`
}

func NewApiController(logger providers.Logger, service services.MovieServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeFailure maps service errors to a 502 body carrying the user-facing message.
func writeFailure(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}

	var failure *models.Failure
	if errors.As(err, &failure) && failure.Message != "" {
		resp.Error = failure.Message
	}
	var stageErr *services.StageError
	if errors.As(err, &stageErr) {
		resp.Stage = string(stageErr.Stage)
	}
	writeJSON(w, http.StatusBadGateway, resp)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeFailure(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func movieID(r *http.Request) (int, bool) {
	id, err := cast.ToIntE(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SearchMovies lists movies matching ?query=, or popular movies when it is empty.
func (ac *ApiController) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	ac.serveFromCacheOrCompute(w, "movies:"+query, func() (any, error) {
		return ac.service.Search(r.Context(), query)
	})
}

func (ac *ApiController) Trending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = cast.ToIntE(raw); err != nil || limit <= 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	trending, err := ac.service.Trending(r.Context(), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trending)
}

// MovieDetail returns the detail bundle without counting a view.
func (ac *ApiController) MovieDetail(w http.ResponseWriter, r *http.Request) {
	ac.serveBundle(w, r, ac.service.MovieDetail)
}

// OpenMovie records a view and returns the detail bundle. The optional
// ?poster= and ?title= describe the card the user clicked.
func (ac *ApiController) OpenMovie(w http.ResponseWriter, r *http.Request) {
	ac.serveBundle(w, r, ac.service.OpenMovie)
}

func (ac *ApiController) serveBundle(w http.ResponseWriter, r *http.Request, load func(context.Context, models.ViewRequest) (*models.MovieDetailBundle, error)) {
	id, ok := movieID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	bundle, err := load(r.Context(), models.ViewRequest{
		MovieID:    id,
		PosterPath: q.Get("poster"),
		Title:      q.Get("title"),
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (ac *ApiController) ViewCount(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, viewCountResponse{MovieID: id, Count: ac.service.ViewCount(r.Context(), id)})
}

// RecordView counts a view without fetching details. Incomplete data is accepted and ignored.
func (ac *ApiController) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload recordViewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.PosterPath == "" {
		ac.logger.Debugf(providers.TypeHTTP, "record view %d without poster ignored", id)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	err := ac.service.RecordView(r.Context(), models.ViewRequest{MovieID: id, PosterPath: payload.PosterPath, Title: payload.MovieName})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCountResponse{MovieID: id, Count: ac.service.ViewCount(r.Context(), id)})
}
