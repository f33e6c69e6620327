package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/StormKing969/movie-review-app/internal/popularity"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/StormKing969/movie-review-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Metadata: structures.MetadataConfig{ImageBaseURL: "https://image.tmdb.org"},
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1 * time.Second,
		},
		Metrics: structures.MetricsConfig{Enabled: true, RefreshInterval: time.Second},
	}
}

func newTestScheduler(conf *structures.Config, backend popularity.DocumentStoreInterface) (*Scheduler, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	store := popularity.NewStore(conf, backend, logger, metrics)
	fm := NewFileManager(&testutil.MockCompressor{}, backend, logger)
	return NewScheduler(conf, logger, metrics, store, fm).(*Scheduler), metrics
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popularity.dat")
	conf := testConfig(path)

	src, metrics := newTestScheduler(conf, seededStore(t))
	require.NoError(t, src.Persist())
	assert.Equal(t, 1, metrics.PersistCalls)

	restored := popularity.NewMemoryStore()
	dst, dstMetrics := newTestScheduler(conf, restored)
	require.NoError(t, dst.Restore())

	n, err := restored.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, dstMetrics.Records["memory"])
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	s, _ := newTestScheduler(testConfig(filepath.Join(t.TempDir(), "none.dat")), popularity.NewMemoryStore())
	assert.NoError(t, s.Restore())
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	s, _ := newTestScheduler(testConfig(path), popularity.NewMemoryStore())
	assert.Error(t, s.Restore())
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	s, _ := newTestScheduler(testConfig("/nonexistent/dir/popularity.dat"), seededStore(t))
	assert.Error(t, s.Persist())
}

func TestScheduler_StopNilCron(t *testing.T) {
	s, _ := newTestScheduler(testConfig(""), popularity.NewMemoryStore())
	assert.NotPanics(t, func() { s.Stop() })
}

func TestScheduler_InitPersistsPeriodically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periodic.dat")
	s, _ := newTestScheduler(testConfig(path), seededStore(t))

	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)
}
