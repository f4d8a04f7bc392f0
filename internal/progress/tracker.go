// Package progress holds the state of the running address import.
package progress

import (
	"sync"
	"time"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"
)

// Tracker is the in-memory status of at most one import run.
// It is not persisted and is not shared between processes.
type Tracker struct {
	mu       sync.Mutex
	status   models.ImportStatus
	previous models.ImportStatus
	now      func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock used for start and end timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker returns an idle tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Begin marks a run as started. It fails with a ConflictError, leaving the
// current status untouched, when a run is already in progress.
func (t *Tracker) Begin(runID string, total int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.IsProcessing {
		return &apperror.ConflictError{Err: apperror.ErrImportInProgress}
	}

	t.previous = t.status
	t.status = models.ImportStatus{
		RunID:        runID,
		IsProcessing: true,
		TotalRecords: total,
		StartTime:    t.now().UnixMilli(),
	}
	return nil
}

// Advance records the cumulative processed and saved counts.
// Values lower than the current ones are ignored.
func (t *Tracker) Advance(processed, saved int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if processed > t.status.ProcessedRecords {
		t.status.ProcessedRecords = processed
	}
	if saved > t.status.SavedRecords {
		t.status.SavedRecords = saved
	}
}

// Release gives up the slot taken by Begin for runID before any work was done,
// restoring the status of the previous run. It is a no-op for any other run.
func (t *Tracker) Release(runID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.status.IsProcessing || t.status.RunID != runID {
		return
	}
	t.status = t.previous
}

// Complete ends the current run successfully.
func (t *Tracker) Complete() {
	t.finish(nil)
}

// Fail ends the current run and records err.
func (t *Tracker) Fail(err error) {
	t.finish(err)
}

func (t *Tracker) finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.IsProcessing = false
	t.status.EndTime = t.now().UnixMilli()
	if err != nil {
		msg := err.Error()
		t.status.Error = &msg
	}
}

// Snapshot returns a copy of the current status.
func (t *Tracker) Snapshot() models.ImportStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.status
	if t.status.Error != nil {
		msg := *t.status.Error
		snapshot.Error = &msg
	}
	return snapshot
}
