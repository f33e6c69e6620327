package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/StormKing969/movie-review-app/internal/persistence/interfaces"
	"github.com/StormKing969/movie-review-app/internal/popularity"
	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	store       popularity.StoreInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if s.fileManager.Enabled() && s.config.Persistence.SaveInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
			if err := s.Persist(); err != nil {
				return
			}
			s.logger.Debugf(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
		})
	}

	if s.config.Metrics.Enabled && s.config.Metrics.RefreshInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Metrics.RefreshInterval), s.RefreshGauges)
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.RefreshGauges()
	return nil
}

func (s *Scheduler) Persist() error {
	if !s.fileManager.Enabled() {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

// Close releases the snapshot compressor. Call it after the final Persist.
func (s *Scheduler) Close() {
	s.fileManager.Close()
}

// RefreshGauges publishes the current record count.
func (s *Scheduler) RefreshGauges() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := s.store.RecordCount(ctx)
	if err != nil {
		s.logger.Warnf(providers.TypePopularity, "Unable to count popularity records: %s", err)
		return
	}
	s.metrics.SetRecordsTotal(s.store.Backend(), n)
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store popularity.StoreInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		store:       store,
		fileManager: fileManager,
	}
}
