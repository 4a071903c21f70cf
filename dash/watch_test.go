package dash

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveRatings(t *testing.T, file string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("ratings")
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("ratings", cell, &row))
	}
	require.NoError(t, f.SaveAs(file))
}

func TestWatcher(t *testing.T) {
	file := filepath.Join(t.TempDir(), "titles.xlsx")
	saveRatings(t, file, [][]any{
		{"age_certification", "count"},
		{"PG", 12},
	})
	d, _ := testDashboard(t, WorkbookSource{Path: file})
	require.NoError(t, d.Refresh(context.Background()))

	bar := mountOf(t, d, ChartBar)
	require.Equal(t, 1, countOf(bar, "bar"))

	w, err := NewWatcher(file, d)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx)
	}()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// events on other files of the directory are ignored
	other := filepath.Join(filepath.Dir(file), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("notes"), 0o644))

	saveRatings(t, file, [][]any{
		{"age_certification", "count"},
		{"PG", 12},
		{"R", 9},
		{"G", 4},
	})
	assert.Eventually(t, func() bool {
		return countOf(bar, "bar") == 3
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "titles.xlsx"), nil)
	assert.Error(t, err)
}
