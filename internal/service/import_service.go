package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"japan-address-api/internal/mapper"
	"japan-address-api/internal/metrics"
	"japan-address-api/internal/models"
	"japan-address-api/internal/parser"
	"japan-address-api/internal/progress"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Persister interface for dependency injection
type Persister interface {
	Persist(ctx context.Context, records []models.AddressRecord, onProgress ProgressFunc) (int, error)
}

// ImportService parses uploads and runs background imports
type ImportService struct {
	persister Persister
	tracker   *progress.Tracker
	newRunID  func() string
	wg        sync.WaitGroup
}

// NewImportService creates a new import service reporting through tracker
func NewImportService(persister Persister, tracker *progress.Tracker) *ImportService {
	return &ImportService{
		persister: persister,
		tracker:   tracker,
		newRunID:  uuid.NewString,
	}
}

// Parse decodes an uploaded file. Nothing is persisted.
func (s *ImportService) Parse(r io.Reader) ([]models.RawRecord, error) {
	records, err := parser.Parse(r, parser.Options{})
	if err != nil {
		return nil, fmt.Errorf("service: failed to parse upload: %w", err)
	}
	return records, nil
}

// Start claims the import slot, validates raws and launches a background import.
// A busy slot is reported before validation. It returns as soon as the run is
// registered; the outcome is only visible through Status.
func (s *ImportService) Start(ctx context.Context, raws []models.RawRecord) (models.ImportStatus, error) {
	runID := s.newRunID()
	if err := s.tracker.Begin(runID, len(raws)); err != nil {
		return s.tracker.Snapshot(), err
	}

	records, err := mapper.MapRecords(raws)
	if err != nil {
		s.tracker.Release(runID)
		return models.ImportStatus{}, fmt.Errorf("service: invalid import records: %w", err)
	}

	log.Info().Str("run_id", runID).Int("total", len(records)).Msg("import started")

	s.wg.Add(1)
	go s.run(context.WithoutCancel(ctx), runID, records)

	return s.tracker.Snapshot(), nil
}

// Status returns the current import status
func (s *ImportService) Status() models.ImportStatus {
	return s.tracker.Snapshot()
}

// Wait blocks until every started run has finished
func (s *ImportService) Wait() {
	s.wg.Wait()
}

func (s *ImportService) run(ctx context.Context, runID string, records []models.AddressRecord) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("import panicked: %v", r)
			log.Error().Str("run_id", runID).Err(err).Msg("import failed")
			metrics.RecordImportRun("failed")
			s.tracker.Fail(err)
		}
	}()

	saved, err := s.persister.Persist(ctx, records, func(p Progress) {
		s.tracker.Advance(p.Processed, p.Written)
	})
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Int("saved", saved).Msg("import failed")
		metrics.RecordImportRun("failed")
		s.tracker.Fail(err)
		return
	}

	s.tracker.Advance(len(records), saved)
	s.tracker.Complete()
	metrics.RecordImportRun("completed")

	log.Info().Str("run_id", runID).Int("total", len(records)).Int("saved", saved).Msg("import completed")
}
