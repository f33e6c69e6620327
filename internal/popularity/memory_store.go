package popularity

import (
	"context"
	"sync"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/google/uuid"
)

const snapshotVersion = 1

type MemoryStore struct {
	mu   sync.RWMutex
	data map[int]models.PopularityRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int]models.PopularityRecord)}
}

func (s *MemoryStore) Name() string {
	return structures.BackendMemory
}

func (s *MemoryStore) FindByMovieID(_ context.Context, movieID int) (*models.PopularityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[movieID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) Create(_ context.Context, record models.PopularityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[record.MovieID]; ok {
		return ErrDuplicate
	}
	if record.DocumentID == "" {
		record.DocumentID = uuid.NewString()
	}
	s.data[record.MovieID] = record
	return nil
}

func (s *MemoryStore) IncrementCount(_ context.Context, movieID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[movieID]
	if !ok {
		return 0, ErrNotFound
	}
	rec.Count++
	s.data[movieID] = rec
	return rec.Count, nil
}

func (s *MemoryStore) TopByCount(_ context.Context, limit int) ([]models.PopularityRecord, error) {
	s.mu.RLock()
	records := make([]models.PopularityRecord, 0, len(s.data))
	for _, rec := range s.data {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	return models.RankRecords(records, limit), nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// Snapshot copies every record for persistence.
func (s *MemoryStore) Snapshot() *models.PopularitySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &models.PopularitySnapshot{
		Version: snapshotVersion,
		Records: make([]models.PopularityRecord, 0, len(s.data)),
	}
	for _, rec := range s.data {
		snap.Records = append(snap.Records, rec)
	}
	return snap
}

// Restore replaces the store contents. Records with a non-positive movie id are dropped.
func (s *MemoryStore) Restore(snap *models.PopularitySnapshot) {
	if snap == nil {
		return
	}
	data := make(map[int]models.PopularityRecord, len(snap.Records))
	for _, rec := range snap.Records {
		if rec.MovieID <= 0 {
			continue
		}
		if rec.DocumentID == "" {
			rec.DocumentID = uuid.NewString()
		}
		data[rec.MovieID] = rec
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}
