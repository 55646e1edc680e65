package form

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/carsensors/internal/report"
	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestDisplayOrderGroupsSensors(t *testing.T) {
	m := New(Options{})
	require.Len(t, m.order, sensor.Count)

	seen := make(map[int]bool)
	for _, idx := range m.order {
		assert.False(t, seen[idx], "index %d listed twice", idx)
		seen[idx] = true
	}

	// Engine group comes first: Engine RPM, Mass Airflow Sensor, Oxygen Sensor...
	assert.Equal(t, []int{0, 1, 4}, m.order[:3])
}

func TestToggleAndAdjust(t *testing.T) {
	m := New(Options{Step: 5})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 50, m.Board().Entries[0].Value, "slider is disabled while inactive")

	m, _ = send(t, m, space, tea.KeyMsg{Type: tea.KeyRight}, runes("L"), runes("L"), runes("L"))
	e := m.Board().Entries[0]
	assert.True(t, e.Active)
	assert.Equal(t, 85, e.Value)

	m, _ = send(t, m, runes("j"), runes("x"), runes("h"))
	e = m.Board().Entries[1]
	assert.True(t, e.Active)
	assert.Equal(t, 45, e.Value)

	m, _ = send(t, m, runes("G"), space)
	last := m.order[len(m.order)-1]
	assert.True(t, m.Board().Entries[last].Active)
	assert.Equal(t, 3, m.Board().ActiveCount())

	m, _ = send(t, m, runes("r"))
	assert.Equal(t, 0, m.Board().ActiveCount())
	assert.Equal(t, "reset to defaults", m.status)
}

func TestCursorBounds(t *testing.T) {
	m := New(Options{})
	m, _ = send(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < sensor.Count+5; i++ {
		m, _ = send(t, m, runes("j"))
	}
	assert.Equal(t, sensor.Count-1, m.cursor)

	m, _ = send(t, m, runes("g"))
	assert.Equal(t, 0, m.cursor)
}

func TestPreviewIsLive(t *testing.T) {
	m := New(Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 200})

	view := m.View()
	assert.Contains(t, view, "Performance Preview")
	assert.Contains(t, view, "0xA4 (Inactive)")
	assert.Contains(t, view, "0xV4 (Inactive)")

	m, _ = send(t, m, space, runes("L"), runes("L"), runes("L"), runes("L"))
	view = m.View()
	assert.Contains(t, view, "0xA1 (High Performance)")
	assert.NotContains(t, view, "0xA4 (Inactive)")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "1/22 active")
}

func TestNarrowViewStacksPanels(t *testing.T) {
	m := New(Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20}, runes("G"))

	view := m.View()
	assert.LessOrEqual(t, strings.Count(view, "\n")+1, 20)
	assert.Contains(t, view, "›", "selected row must stay visible")
}

func TestSubmitExportsReport(t *testing.T) {
	dir := t.TempDir()
	ds, err := store.New(dir, "")
	require.NoError(t, err)

	m := New(Options{Store: ds})
	m, _ = send(t, m, space, runes("L"), runes("L"), runes("L"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "exporting...", m.status)

	msg := cmd()
	exported, ok := msg.(exportedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, ds.Path(), exported.path)

	m, _ = send(t, m, msg)
	assert.Contains(t, m.status, "car-sensor-report.csv")
	assert.False(t, m.lastExport.IsZero())

	raw, err := os.ReadFile(exported.path)
	require.NoError(t, err)
	assert.Equal(t, report.FromBoard(m.Board()), string(raw))
	assert.Contains(t, string(raw), "Engine RPM,0xA1 (High Performance)\n")
}

func TestSubmitWithoutStore(t *testing.T) {
	m := New(Options{})
	m, cmd := send(t, m, runes("s"))
	assert.Nil(t, cmd)
	assert.Error(t, m.err)
}

func TestExportErrorIsShown(t *testing.T) {
	m := New(Options{})
	m, _ = send(t, m, errMsg{os.ErrPermission}, tea.WindowSizeMsg{Width: 120, Height: 60})
	assert.ErrorIs(t, m.err, os.ErrPermission)
	assert.Contains(t, m.View(), "ERROR")
}

func TestQuit(t *testing.T) {
	m := New(Options{})
	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
