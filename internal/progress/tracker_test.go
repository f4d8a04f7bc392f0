package progress

import (
	"errors"
	"sync"
	"testing"
	"time"

	"japan-address-api/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestTracker_Lifecycle(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	end := start.Add(3 * time.Second)
	tracker := NewTracker(WithClock(fixedClock(start, end)))

	assert.False(t, tracker.Snapshot().IsProcessing)

	require.NoError(t, tracker.Begin("run-1", 3))
	s := tracker.Snapshot()
	assert.True(t, s.IsProcessing)
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, start.UnixMilli(), s.StartTime)
	assert.Zero(t, s.EndTime)

	tracker.Advance(2, 2)
	tracker.Advance(3, 3)
	tracker.Complete()

	s = tracker.Snapshot()
	assert.False(t, s.IsProcessing)
	assert.Equal(t, 3, s.ProcessedRecords)
	assert.Equal(t, 3, s.SavedRecords)
	assert.Equal(t, end.UnixMilli(), s.EndTime)
	assert.Nil(t, s.Error)
}

func TestTracker_BeginWhileInProgress(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Begin("first", 10))
	tracker.Advance(4, 4)

	err := tracker.Begin("second", 99)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.ErrorIs(t, err, apperror.ErrImportInProgress)

	s := tracker.Snapshot()
	assert.Equal(t, "first", s.RunID)
	assert.Equal(t, 10, s.TotalRecords)
	assert.Equal(t, 4, s.ProcessedRecords)
}

func TestTracker_AdvanceIsMonotonic(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Begin("run", 100))

	for _, n := range []int{0, 10, 10, 25, 60} {
		tracker.Advance(n, n)
		assert.Equal(t, n, tracker.Snapshot().ProcessedRecords)
	}

	tracker.Advance(5, 5)
	assert.Equal(t, 60, tracker.Snapshot().ProcessedRecords)
	assert.Equal(t, 60, tracker.Snapshot().SavedRecords)
}

func TestTracker_FailRecordsErrorAndAllowsRestart(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Begin("run", 5))
	tracker.Fail(errors.New("connection refused"))

	s := tracker.Snapshot()
	assert.False(t, s.IsProcessing)
	require.NotNil(t, s.Error)
	assert.Equal(t, "connection refused", *s.Error)
	assert.NotZero(t, s.EndTime)

	require.NoError(t, tracker.Begin("retry", 5))
	s = tracker.Snapshot()
	assert.Nil(t, s.Error)
	assert.Zero(t, s.ProcessedRecords)
}

func TestTracker_ReleaseRestoresPreviousRun(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Begin("done", 3))
	tracker.Advance(3, 3)
	tracker.Complete()
	before := tracker.Snapshot()

	require.NoError(t, tracker.Begin("rejected", 7))
	tracker.Release("other")
	assert.True(t, tracker.Snapshot().IsProcessing)

	tracker.Release("rejected")
	assert.Equal(t, before, tracker.Snapshot())
	require.NoError(t, tracker.Begin("next", 1))
}

func TestTracker_SnapshotIsACopy(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Begin("run", 1))
	tracker.Fail(errors.New("boom"))

	s := tracker.Snapshot()
	*s.Error = "changed"
	s.TotalRecords = 42

	again := tracker.Snapshot()
	assert.Equal(t, "boom", *again.Error)
	assert.Equal(t, 1, again.TotalRecords)
}

func TestTracker_ConcurrentBeginAdmitsOne(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	var mu sync.Mutex
	started := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tracker.Begin("run", 1); err == nil {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, started)
}
