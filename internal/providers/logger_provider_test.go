package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "metadata", TypeMetadata.String())
	assert.Equal(t, "popularity", TypePopularity.String())
	assert.Equal(t, "app", TypeEnum(42).String())
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer cleanup()

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeHTTP, "http message")
	logger.Warnf(TypePopularity, "popularity message")

	for _, name := range []string{"app", "http", "metadata", "popularity", "session"} {
		_, err := os.Stat(filepath.Join(dir, name+".log"))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, _, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "loud",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, _, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_CleanupClosesFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Infof(TypeApp, "before close")

	lp := logger.(*LogProvider)
	require.Len(t, lp.files, len(typeNames))
	cleanup()

	// already closed by cleanup
	for _, f := range lp.files {
		assert.NoError(t, f.Close())
	}
	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
}
