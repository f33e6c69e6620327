package session

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/search"
	"github.com/StormKing969/movie-review-app/internal/services"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"go.uber.org/atomic"
)

const HomeRoute = "/"

// State is everything the home and detail pages render.
type State struct {
	SearchTerm    string
	DebouncedTerm string
	Movies        []models.MovieSummary
	IsLoading     bool
	ErrorMessage  string
	Trending      []models.TrendingEntry
	Selected      *models.MovieDetailBundle
	DetailError   bool
	ViewCount     int
	Route         string

	// ListVersion grows each time a search settles the movie list.
	ListVersion uint64
}

// Session owns the state of one interactive user. Only the newest search may
// write the movie list; responses of superseded searches are dropped.
type Session struct {
	mu             sync.Mutex
	state          State
	trendingLoaded bool
	closed         bool
	listener       func(State)

	service   services.MovieServiceInterface
	logger    providers.Logger
	debouncer *search.Debouncer[string]
	seq       atomic.Uint64
	ctx       context.Context
	cancel    context.CancelFunc
	inflight  sync.WaitGroup
}

func NewSession(conf *structures.Config, service services.MovieServiceInterface, logger providers.Logger) *Session {
	return newSession(conf, service, logger, nil)
}

// NewSessionWithClock is NewSession with a custom timer source for the search debouncer.
func NewSessionWithClock(conf *structures.Config, service services.MovieServiceInterface, logger providers.Logger, after search.AfterFunc) *Session {
	return newSession(conf, service, logger, after)
}

func newSession(conf *structures.Config, service services.MovieServiceInterface, logger providers.Logger, after search.AfterFunc) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		state:   State{Route: HomeRoute},
		service: service,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	if after != nil {
		s.debouncer = search.NewDebouncerWithClock(conf.Search.Debounce, after, s.runSearch)
	} else {
		s.debouncer = search.NewDebouncer(conf.Search.Debounce, s.runSearch)
	}
	return s
}

// SetListener registers a callback invoked with a snapshot after every change.
func (s *Session) SetListener(fn func(State)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Start loads the trending rail once and the unfiltered movie list.
func (s *Session) Start() {
	s.loadTrending()
	s.runSearch("")
}

func (s *Session) loadTrending() {
	s.mu.Lock()
	if s.trendingLoaded {
		s.mu.Unlock()
		return
	}
	s.trendingLoaded = true
	s.mu.Unlock()

	trending, err := s.service.Trending(s.ctx, 0)
	if err != nil {
		s.logger.Errorf(providers.TypeSession, "Error fetching trending movies: %v", err)
		return
	}
	s.update(func(st *State) {
		st.Trending = trending
	})
}

// Type records the raw search input; the search itself runs after the quiet period.
func (s *Session) Type(term string) {
	s.update(func(st *State) {
		st.SearchTerm = term
	})
	s.debouncer.Push(term)
}

func (s *Session) runSearch(term string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	seq := s.seq.Inc()
	s.update(func(st *State) {
		st.DebouncedTerm = term
		st.IsLoading = true
		st.ErrorMessage = ""
	})

	movies, err := s.service.Search(s.ctx, term)

	if seq != s.seq.Load() {
		s.logger.Debugf(providers.TypeSession, "Dropping stale results for %q", term)
		return
	}
	s.update(func(st *State) {
		st.IsLoading = false
		st.ListVersion++
		if err != nil {
			st.ErrorMessage = failureMessage(err)
			st.Movies = []models.MovieSummary{}
			return
		}
		st.Movies = movies
	})
	if err != nil {
		s.logger.Warnf(providers.TypeSession, "Error fetching movies: %v", err)
	}
}

// Open fetches the detail bundle and navigates to the movie. On failure the
// selection and route are left untouched and DetailError is set.
func (s *Session) Open(ctx context.Context, req models.ViewRequest) (bool, error) {
	s.update(func(st *State) {
		st.DetailError = false
	})

	bundle, err := s.service.OpenMovie(ctx, req)
	if err != nil {
		s.logger.Errorf(providers.TypeSession, "Error fetching movie details, cannot navigate to movie page: %v", err)
		s.update(func(st *State) {
			st.DetailError = true
		})
		return false, err
	}

	count := s.service.ViewCount(ctx, req.MovieID)
	s.update(func(st *State) {
		st.Selected = bundle
		st.ViewCount = count
		st.Route = MovieRoute(req.MovieID, bundle.Detail.Title)
	})
	return true, nil
}

// RequestFor builds the view request for a movie shown on the current page,
// looking at the movie list first and the trending rail second.
func (s *Session) RequestFor(movieID int) (models.ViewRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.state.Movies {
		if m.ID == movieID {
			req := models.ViewRequest{MovieID: m.ID, Title: m.Title}
			if m.PosterPath != nil {
				req.PosterPath = *m.PosterPath
			}
			return req, true
		}
	}
	for _, t := range s.state.Trending {
		if t.MovieID == movieID {
			return models.ViewRequest{MovieID: t.MovieID, PosterPath: t.PosterURL, Title: t.MovieName}, true
		}
	}
	return models.ViewRequest{}, false
}

func (s *Session) Back() {
	s.update(func(st *State) {
		st.Selected = nil
		st.ViewCount = 0
		st.Route = HomeRoute
	})
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

func (s *Session) copyState() State {
	st := s.state
	st.Movies = append([]models.MovieSummary(nil), s.state.Movies...)
	st.Trending = append([]models.TrendingEntry(nil), s.state.Trending...)
	return st
}

// Close drops any pending search and waits for running ones.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.debouncer.Stop()
	s.cancel()
	s.inflight.Wait()
}

func (s *Session) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	listener := s.listener
	snapshot := s.copyState()
	s.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
}

func MovieRoute(movieID int, title string) string {
	route := "/movie/" + strconv.Itoa(movieID)
	if slug := models.Slug(title); slug != "" {
		route += "/" + slug
	}
	return route
}

func failureMessage(err error) string {
	var f *models.Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return err.Error()
}
