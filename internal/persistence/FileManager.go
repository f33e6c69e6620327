package persistence

import (
	"io"
	"os"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/persistence/interfaces"
	"github.com/StormKing969/movie-review-app/internal/popularity"
	"github.com/StormKing969/movie-review-app/internal/providers"
	json "github.com/goccy/go-json"
)

// FileManager writes compressed snapshots of an in-memory popularity store.
// For backends that persist on their own it does nothing.
type FileManager struct {
	store      interfaces.SnapshotterInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, backend popularity.DocumentStoreInterface, logger providers.Logger) *FileManager {
	store, _ := backend.(interfaces.SnapshotterInterface)
	return &FileManager{
		store:      store,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Enabled() bool {
	return f.store != nil
}

func (f *FileManager) SaveToFile(fileName string) error {
	if f.store == nil {
		return nil
	}
	jsonData, err := json.Marshal(f.store.Snapshot())
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	if c, ok := f.compressor.(io.Closer); ok {
		_ = c.Close()
	}
}

// LoadFromFile restores the store from fileName. A missing file is not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	if f.store == nil {
		return nil
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap models.PopularitySnapshot
	if err := json.Unmarshal(decompressedData, &snap); err == nil && snap.Records != nil {
		f.store.Restore(&snap)
		f.logger.Infof(providers.TypePopularity, "Restored %d popularity records", len(snap.Records))
		return nil
	}

	// bare list of documents, as exported from a hosted document store
	f.logger.Warnf(providers.TypePopularity, "Snapshot is not in the current format, trying a plain record list")
	var records []models.PopularityRecord
	if err := json.Unmarshal(decompressedData, &records); err != nil {
		f.logger.Warnf(providers.TypePopularity, "Migration failed")
		return err
	}
	f.store.Restore(&models.PopularitySnapshot{Version: 0, Records: records})
	f.logger.Warnf(providers.TypePopularity, "Imported %d records from plain list", len(records))

	return nil
}
