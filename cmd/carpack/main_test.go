package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "carpack v"+version)
}

func TestPSDCommand(t *testing.T) {
	out, err := runCmd(t, "psd", "--widths", "0.05", "--fmin", "0.001", "--fmax", "1", "--n", "5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "frequency,psd", lines[0])
	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 2)
	f, err := strconv.ParseFloat(fields[0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.001, f, 1e-12)
}

func TestPSDCommandNeedsGrid(t *testing.T) {
	_, err := runCmd(t, "psd", "--widths", "0.05")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spectrum:\n  percentile: 150\n"), 0o644))

	_, err := runCmd(t, "--config", path, "version")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestSimulateCommand(t *testing.T) {
	args := []string{"simulate", "--widths", "0.03,0.1", "--centroids", "0.2,0.013",
		"--points", "20", "--dt", "0.5", "--seed", "3", "--ysig", "0.1"}
	first, err := runCmd(t, args...)
	require.NoError(t, err)
	second, err := runCmd(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed, same light curve")
	lines := strings.Split(strings.TrimSpace(first), "\n")
	assert.Len(t, lines, 21)
	assert.Equal(t, "time,y,ysig", lines[0])
}

func writeSamples(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "samples.dat")
	content := "logpost sigma measerr_scale log_width\n" +
		"-3 1.0 1.0 -2.3\n" +
		"-1 1.2 1.0 -2.0\n" +
		"-2 0.8 1.0 -1.6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeLightCurve(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "lc.csv")
	var b strings.Builder
	b.WriteString("time,y,ysig\n")
	for i := range 40 {
		tt := float64(i) * 0.7
		y := float64(i%5) - 2
		b.WriteString(strings.Join([]string{
			strconv.FormatFloat(tt, 'g', -1, 64), strconv.FormatFloat(y, 'g', -1, 64), "0.1",
		}, ","))
		b.WriteString("\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestBandCommand(t *testing.T) {
	dir := t.TempDir()
	samples := writeSamples(t, dir)
	lc := writeLightCurve(t, dir)

	out, err := runCmd(t, "band", samples, "--lightcurve", lc, "--n", "8", "--percentile", "50")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, "frequency,lower,median,upper", lines[0])
}

func TestFilterCommand(t *testing.T) {
	dir := t.TempDir()
	samples := writeSamples(t, dir)
	lc := writeLightCurve(t, dir)
	table := filepath.Join(dir, "filtered.csv")

	out, err := runCmd(t, "filter", lc, "--samples", samples, "--best-fit", "median", "--table", table)
	require.NoError(t, err)
	assert.Contains(t, out, "CAR(1)")
	assert.Contains(t, out, "Ljung-Box")
	assert.Contains(t, out, "Box-Pierce")

	data, err := os.ReadFile(table)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 41)

	out, err = runCmd(t, "filter", lc, "--samples", samples, "--all")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestDemoCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.json")
	stdout, err := runCmd(t, "demo", "--draws", "20", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var parsed OutputData
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Len(t, parsed.Models, 4)
}
