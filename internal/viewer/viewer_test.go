package viewer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/carsensors/internal/report"
	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
)

func writeReport(t *testing.T) string {
	t.Helper()
	ds, err := store.New(t.TempDir(), "")
	require.NoError(t, err)

	b := sensor.NewBoard()
	b.Apply(0, sensor.State{Active: true, Value: 85})
	b.Apply(9, sensor.State{Active: true, Value: 20})
	path, err := ds.Export(report.FromBoard(b))
	require.NoError(t, err)
	return path
}

func TestViewerLoadsReport(t *testing.T) {
	m := initModel(writeReport(t))
	require.NoError(t, m.err)
	require.Len(t, m.rows, sensor.Count)
	assert.Equal(t, 1, m.counts[report.TierHigh])
	assert.Equal(t, 1, m.counts[report.TierLow])
	assert.Equal(t, 20, m.counts[report.TierInactive])

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 200})
	view := next.(model).View()
	assert.Contains(t, view, "SENSOR REPORT")
	assert.Contains(t, view, "Engine RPM")
	assert.Contains(t, view, "0xJ3 (Low Performance)")
	assert.Contains(t, view, "inactive 20")
}

func TestViewerScrollAndReload(t *testing.T) {
	path := writeReport(t)
	m := initModel(path)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(model)
	assert.Equal(t, 1, m.scroll)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m = next.(model)
	assert.Equal(t, 0, m.scroll)

	require.NoError(t, os.WriteFile(path, []byte("broken\n"), 0644))
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(model)
	assert.ErrorIs(t, m.err, report.ErrBadHeader)
}

func TestViewerScrollStopsAtEnd(t *testing.T) {
	m := initModel(writeReport(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(model)

	maxScroll := len(strings.Split(m.content(), "\n")) - m.visibleLines()
	require.Greater(t, maxScroll, 0)

	for i := 0; i < maxScroll+20; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
		m = next.(model)
	}
	next, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	m = next.(model)
	assert.Equal(t, maxScroll, m.scroll)

	// One step up moves off the end right away.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = next.(model)
	assert.Equal(t, maxScroll-1, m.scroll)

	// Growing the window pulls the offset back in.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 500})
	m = next.(model)
	assert.Equal(t, 0, m.scroll)
}

func TestViewerMissingFile(t *testing.T) {
	err := Run(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
