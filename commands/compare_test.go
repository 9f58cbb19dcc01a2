package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posinsight/internal/core/model"
)

func TestToSeriesSpecs(t *testing.T) {
	entries := []seriesFileEntry{
		{Name: "week 1", Color: "#3b82f6", Start: "2025-09-01", End: "2025-09-07"},
		{Name: "week 2", Start: "2025-09-08", End: "2025-09-14", Weekdays: "workdays"},
	}

	specs, err := toSeriesSpecs(entries)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "week 1", specs[0].Name)
	assert.Equal(t, "#3b82f6", specs[0].Color)
	assert.Equal(t, model.AllWeekdays(), specs[0].Filter.Weekdays)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), specs[0].Filter.Start)

	assert.Equal(t, model.Workdays(), specs[1].Filter.Weekdays)
}

func TestToSeriesSpecsValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []seriesFileEntry
	}{
		{name: "missing name", entries: []seriesFileEntry{{Start: "2025-09-01", End: "2025-09-07"}}},
		{name: "missing dates", entries: []seriesFileEntry{{Name: "x", Start: "2025-09-01"}}},
		{name: "bad date", entries: []seriesFileEntry{{Name: "x", Start: "soon", End: "2025-09-07"}}},
		{name: "bad weekdays", entries: []seriesFileEntry{{Name: "x", Start: "2025-09-01", End: "2025-09-07", Weekdays: "funday"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := toSeriesSpecs(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestLoadSeriesSpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")
	content := `[
  {"name": "before promo", "color": "#888", "start": "2025-09-01", "end": "2025-09-07"},
  {"name": "after promo", "color": "#f59e0b", "start": "2025-09-08", "end": "2025-09-14"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	specs, err := loadSeriesSpecs(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "before promo", specs[0].Name)
	assert.Equal(t, "after promo", specs[1].Name)
}

func TestLoadSeriesSpecsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := loadSeriesSpecs(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "series.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := loadSeriesSpecs(path)
		assert.Error(t, err)
	})

	t.Run("empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "series.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
		_, err := loadSeriesSpecs(path)
		assert.Error(t, err)
	})
}
