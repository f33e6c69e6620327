package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/popularity"
	"github.com/StormKing969/movie-review-app/internal/testutil"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remoteBackend stands in for a backend that persists on its own.
type remoteBackend struct {
	popularity.DocumentStoreInterface
}

func seededStore(t *testing.T) *popularity.MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := popularity.NewMemoryStore()
	require.NoError(t, s.Create(ctx, models.PopularityRecord{MovieID: 27205, Count: 2, PosterURL: "https://image.tmdb.org/t/p/w500/abc.jpg", MovieName: "Inception"}))
	require.NoError(t, s.Create(ctx, models.PopularityRecord{MovieID: 155, Count: 5, PosterURL: "https://image.tmdb.org/t/p/w500/dk.jpg", MovieName: "The Dark Knight"}))
	return s
}

func TestFileManager_SaveToFile_AtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popularity.dat")
	fm := NewFileManager(&testutil.MockCompressor{}, seededStore(t), &testutil.MockLogger{})
	require.True(t, fm.Enabled())

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap models.PopularitySnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 1, snap.Version)
	assert.Len(t, snap.Records, 2)
}

func TestFileManager_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popularity.dat")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	src := NewFileManager(comp, seededStore(t), &testutil.MockLogger{})
	require.NoError(t, src.SaveToFile(path))

	restored := popularity.NewMemoryStore()
	dst := NewFileManager(comp, restored, &testutil.MockLogger{})
	require.NoError(t, dst.LoadFromFile(path))

	top, err := restored.TopByCount(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 155, top[0].MovieID)
	assert.Equal(t, "Inception", top[1].MovieName)
	src.Close()
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := NewFileManager(&testutil.MockCompressor{}, popularity.NewMemoryStore(), &testutil.MockLogger{})
	assert.NoError(t, fm.LoadFromFile(filepath.Join(t.TempDir(), "missing.dat")))
}

func TestFileManager_LoadFromFile_PlainRecordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"movie_id":603,"count":4,"poster_url":"p","movie_name":"The Matrix"}]`), 0644))

	store := popularity.NewMemoryStore()
	logger := &testutil.MockLogger{}
	fm := NewFileManager(&testutil.MockCompressor{}, store, logger)
	require.NoError(t, fm.LoadFromFile(path))

	rec, err := store.FindByMovieID(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Count)
	assert.True(t, logger.HasLog("warn", "Imported 1 records"))
}

func TestFileManager_LoadFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	fm := NewFileManager(&testutil.MockCompressor{}, popularity.NewMemoryStore(), &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popularity.dat")
	comp := &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("compress failed") },
	}
	fm := NewFileManager(comp, seededStore(t), &testutil.MockLogger{})

	assert.EqualError(t, fm.SaveToFile(path), "compress failed")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_DecompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popularity.dat")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	comp := &testutil.MockCompressor{
		DecompressFn: func([]byte) ([]byte, error) { return nil, errors.New("decompress failed") },
	}
	fm := NewFileManager(comp, popularity.NewMemoryStore(), &testutil.MockLogger{})

	assert.EqualError(t, fm.LoadFromFile(path), "decompress failed")
}

func TestFileManager_DisabledForRemoteBackends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popularity.dat")
	fm := NewFileManager(&testutil.MockCompressor{}, remoteBackend{}, &testutil.MockLogger{})

	assert.False(t, fm.Enabled())
	assert.NoError(t, fm.SaveToFile(path))
	assert.NoError(t, fm.LoadFromFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
