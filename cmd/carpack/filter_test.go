package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/gocarma/timeseries"
)

func TestWriteFilterTable(t *testing.T) {
	lc, err := timeseries.New([]float64{0, 1, 2}, []float64{1, 2, 3}, []float64{0.1, 0.1, 0.1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "table.csv")
	err = writeFilterTable(path, lc, []float64{-1, 0, 1}, []float64{0.5, 0.5, 0.5}, []float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,y,kalman_mean,kalman_var,residual", lines[0])
	assert.Equal(t, "2,3,3,0.5,0.3", lines[3])
}

func TestWriteFilterTableMissingDir(t *testing.T) {
	lc, err := timeseries.New([]float64{0}, []float64{1}, []float64{0.1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing", "table.csv")
	err = writeFilterTable(path, lc, []float64{0}, []float64{1}, []float64{0})
	assert.Error(t, err)
}
