package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posinsight/internal/core/model"
)

func recordAt(ts time.Time) model.TransactionRecord {
	return model.NewTransactionRecord(ts, decimal.NewFromInt(100))
}

func TestStoreLoadSortsAscending(t *testing.T) {
	s := New()
	s.Load([]model.TransactionRecord{
		recordAt(time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)),
	})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.True(t, snap[0].Timestamp.Before(snap[1].Timestamp))
	assert.True(t, snap[1].Timestamp.Before(snap[2].Timestamp))
}

func TestStoreLoadReplacesWholesale(t *testing.T) {
	s := New()
	s.Load([]model.TransactionRecord{
		recordAt(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)),
	})
	s.Load([]model.TransactionRecord{
		recordAt(time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)),
	})

	assert.Equal(t, 1, s.Len())
	min, max, ok := s.DateRange()
	require.True(t, ok)
	assert.Equal(t, 5, min.Day())
	assert.Equal(t, 5, max.Day())
}

func TestStoreSnapshotIsolation(t *testing.T) {
	// Snapshots taken before a load keep observing the old dataset.
	s := New()
	s.Load([]model.TransactionRecord{
		recordAt(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)),
	})

	before := s.Snapshot()
	s.Load([]model.TransactionRecord{
		recordAt(time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC)),
	})

	assert.Len(t, before, 1)
	assert.Equal(t, time.September, before[0].Timestamp.Month())
	assert.Len(t, s.Snapshot(), 2)
}

func TestStoreEmpty(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())
	_, _, ok := s.DateRange()
	assert.False(t, ok)
}

func TestStoreLoadCopiesInput(t *testing.T) {
	input := []model.TransactionRecord{
		recordAt(time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)),
	}
	s := New()
	s.Load(input)

	// Caller-side mutation must not reach the installed dataset.
	input[0] = recordAt(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	min, _, ok := s.DateRange()
	require.True(t, ok)
	assert.Equal(t, 2025, min.Year())
}
