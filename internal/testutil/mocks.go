package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLog reports whether a message of the given level contains substr.
func (m *MockLogger) HasLog(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level && strings.Contains(fmt.Sprintf(l.Format, l.Args...), substr) {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu               sync.Mutex
	Upstream         []string // "operation:outcome"
	PopularityWrites []string
	CacheHits        int
	CacheMisses      int
	Records          map[string]int
	PersistCalls     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveUpstream(operation, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upstream = append(m.Upstream, operation+":"+outcome)
}

func (m *MockMetrics) IncPopularityWrites(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PopularityWrites = append(m.PopularityWrites, result)
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}

func (m *MockMetrics) SetRecordsTotal(backend string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string]int)
	}
	m.Records[backend] = count
}

// MockMetadataClient implements metadata.ClientInterface with canned responses.
type MockMetadataClient struct {
	mu          sync.Mutex
	Movies      map[string][]models.MovieSummary
	Details     map[int]*models.MovieDetail
	Videos      map[int][]models.VideoEntry
	Posters     map[int][]models.PosterEntry
	SearchErr   error
	DetailErr   error
	VideosErr   error
	ImagesErr   error
	SearchHook  func(query string)
	SearchCalls []string
	DetailCalls []int
	VideoCalls  []int
	ImageCalls  []int
}

func (m *MockMetadataClient) SearchMovies(_ context.Context, query string) ([]models.MovieSummary, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, query)
	hook := m.SearchHook
	movies, err := m.Movies[query], m.SearchErr
	m.mu.Unlock()

	if hook != nil {
		hook(query)
	}
	if err != nil {
		return nil, err
	}
	if movies == nil {
		return []models.MovieSummary{}, nil
	}
	return movies, nil
}

func (m *MockMetadataClient) GetMovieDetail(_ context.Context, id int) (*models.MovieDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DetailCalls = append(m.DetailCalls, id)
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	if d, ok := m.Details[id]; ok {
		return d, nil
	}
	return &models.MovieDetail{MovieSummary: models.MovieSummary{ID: id}}, nil
}

func (m *MockMetadataClient) GetMovieVideos(_ context.Context, id int) ([]models.VideoEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VideoCalls = append(m.VideoCalls, id)
	if m.VideosErr != nil {
		return nil, m.VideosErr
	}
	return m.Videos[id], nil
}

func (m *MockMetadataClient) GetMovieImages(_ context.Context, id int) ([]models.PosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageCalls = append(m.ImageCalls, id)
	if m.ImagesErr != nil {
		return nil, m.ImagesErr
	}
	return m.Posters[id], nil
}

// MockPopularityStore implements popularity.StoreInterface over a plain map.
type MockPopularityStore struct {
	mu          sync.Mutex
	Records     map[int]*models.PopularityRecord
	RecordErr   error
	TrendingErr error
	CountErr    error
	ViewCalls   []models.ViewRequest
}

func NewMockPopularityStore() *MockPopularityStore {
	return &MockPopularityStore{Records: make(map[int]*models.PopularityRecord)}
}

func (m *MockPopularityStore) RecordView(_ context.Context, movieID int, posterPath, movieName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ViewCalls = append(m.ViewCalls, models.ViewRequest{MovieID: movieID, PosterPath: posterPath, Title: movieName})
	if m.RecordErr != nil {
		return m.RecordErr
	}
	if movieID <= 0 || posterPath == "" {
		return nil
	}
	if r, ok := m.Records[movieID]; ok {
		r.Count++
		return nil
	}
	m.Records[movieID] = &models.PopularityRecord{MovieID: movieID, Count: 1, PosterURL: posterPath, MovieName: movieName}
	return nil
}

func (m *MockPopularityStore) GetViewCount(_ context.Context, movieID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0
	}
	if r, ok := m.Records[movieID]; ok {
		return r.Count
	}
	return 1
}

func (m *MockPopularityStore) GetTrending(_ context.Context, limit int) ([]models.TrendingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TrendingErr != nil {
		return nil, m.TrendingErr
	}
	records := make([]models.PopularityRecord, 0, len(m.Records))
	for _, r := range m.Records {
		records = append(records, *r)
	}
	ranked := models.RankRecords(records, limit)
	out := make([]models.TrendingEntry, len(ranked))
	for i, r := range ranked {
		out[i] = r.Trending()
	}
	return out, nil
}

func (m *MockPopularityStore) RecordCount(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return len(m.Records), nil
}

func (m *MockPopularityStore) Backend() string {
	return "mock"
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements persistence.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}
