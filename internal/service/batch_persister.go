package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/metrics"
	"japan-address-api/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultBatchSize is the number of records written per storage transaction.
const DefaultBatchSize = 1000

// BatchStore interface for dependency injection
type BatchStore interface {
	SeedReferenceData(ctx context.Context, regions []models.Region, prefectures []models.Prefecture) (int64, error)
	SaveBatch(ctx context.Context, cities []models.City, records []models.AddressRecord) (int64, error)
}

// Progress is reported after every batch.
// Written counts newly stored rows, Processed counts rows attempted so far.
type Progress struct {
	Batch     int
	Written   int
	Processed int
	Total     int
}

// ProgressFunc receives cumulative progress.
type ProgressFunc func(Progress)

// BatchPersister writes address records to storage in fixed-size batches
type BatchPersister struct {
	store     BatchStore
	batchSize int
	seedMu    sync.Mutex
}

// NewBatchPersister creates a persister. A non-positive batchSize selects DefaultBatchSize.
func NewBatchPersister(store BatchStore, batchSize int) *BatchPersister {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchPersister{store: store, batchSize: batchSize}
}

// BatchSize returns the configured batch size
func (p *BatchPersister) BatchSize() int {
	return p.batchSize
}

// Persist seeds the reference catalog if needed, then writes records batch by batch
// in input order. Existing rows are skipped. The first failing batch aborts the
// run; earlier batches stay committed. It returns the number of newly written rows.
func (p *BatchPersister) Persist(ctx context.Context, records []models.AddressRecord, onProgress ProgressFunc) (int, error) {
	if err := p.ensureReferenceData(ctx); err != nil {
		return 0, err
	}

	total := len(records)
	written, processed, batch := 0, 0, 0

	for start := 0; start < total; start += p.batchSize {
		end := min(start+p.batchSize, total)
		chunk := records[start:end]
		batch++

		began := time.Now()
		n, err := p.store.SaveBatch(ctx, distinctCities(chunk), chunk)
		if err != nil {
			return written, asPersistenceError(fmt.Sprintf("save batch %d", batch), err)
		}
		metrics.RecordBatch(len(chunk), int(n), time.Since(began))

		written += int(n)
		processed = end

		log.Debug().
			Int("batch", batch).
			Int("size", len(chunk)).
			Int64("written", n).
			Int("processed", processed).
			Int("total", total).
			Msg("import batch saved")

		if onProgress != nil {
			onProgress(Progress{Batch: batch, Written: written, Processed: processed, Total: total})
		}
	}

	return written, nil
}

// ensureReferenceData runs the count-then-insert seeding under a lock so two
// runs in this process cannot seed at the same time.
func (p *BatchPersister) ensureReferenceData(ctx context.Context) error {
	p.seedMu.Lock()
	defer p.seedMu.Unlock()

	seeded, err := p.store.SeedReferenceData(ctx, models.Regions, models.Prefectures)
	if err != nil {
		return asPersistenceError("seed reference data", err)
	}
	if seeded > 0 {
		log.Info().Int64("rows", seeded).Msg("seeded region and prefecture catalog")
	}
	return nil
}

// distinctCities returns the cities referenced by records, first occurrence wins.
func distinctCities(records []models.AddressRecord) []models.City {
	seen := make(map[string]struct{})
	cities := []models.City{}
	for _, r := range records {
		if _, ok := seen[r.CityCode]; ok {
			continue
		}
		seen[r.CityCode] = struct{}{}
		cities = append(cities, r.City())
	}
	return cities
}

func asPersistenceError(op string, err error) error {
	var pe *apperror.PersistenceError
	if errors.As(err, &pe) {
		return fmt.Errorf("service: %s: %w", op, err)
	}
	return &apperror.PersistenceError{Op: op, Err: err}
}
