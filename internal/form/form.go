// Package form implements the interactive sensor form TUI: a checkbox and
// slider per sensor, a live performance preview, and CSV export.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/luki/carsensors/internal/chart"
	"github.com/luki/carsensors/internal/report"
	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
)

const bigStep = 10

// ── Messages ─────────────────────────────────────────────────────────

type exportedMsg struct {
	path string
	time time.Time
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ── Model ────────────────────────────────────────────────────────────

// Options configures a new form.
type Options struct {
	Board  *sensor.Board    // nil starts from defaults
	Store  *store.DiskStore // nil disables submit
	Step   int              // slider step, default 1
	Logger *zap.Logger      // nil discards
}

// Model is the BubbleTea model for the sensor form.
type Model struct {
	board  *sensor.Board
	store  *store.DiskStore
	log    *zap.Logger
	keys   keyMap
	help   help.Model
	bar    progress.Model
	order  []int // board indices in display order
	cursor int   // position in order
	step   int
	width  int
	height int

	status     string
	err        error
	lastExport time.Time
}

// New creates the initial form model.
func New(opts Options) Model {
	b := opts.Board
	if b == nil {
		b = sensor.NewBoard()
	}
	step := opts.Step
	if step <= 0 {
		step = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		board: b,
		store: opts.Store,
		log:   log,
		keys:  defaultKeyMap(),
		help:  help.New(),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(22), progress.WithoutPercentage()),
		order: displayOrder(b),
		step:  step,
	}
}

// Board returns the board the form edits.
func (m Model) Board() *sensor.Board { return m.board }

// Run launches the form TUI and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// displayOrder groups board indices by sensor group, groups in order of
// first appearance, sensors in registry order within a group.
func displayOrder(b *sensor.Board) []int {
	groups := make(map[string][]int)
	var groupOrder []string
	for i, e := range b.Entries {
		g := sensor.Group(e.Name)
		if _, ok := groups[g]; !ok {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], i)
	}
	order := make([]int, 0, b.Len())
	for _, g := range groupOrder {
		order = append(order, groups[g]...)
	}
	return order
}

// ── Commands ─────────────────────────────────────────────────────────

func exportCmd(ds *store.DiskStore, doc string) tea.Cmd {
	return func() tea.Msg {
		path, err := ds.Export(doc)
		if err != nil {
			return errMsg{err}
		}
		return exportedMsg{path: path, time: time.Now()}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		idx := m.selected()
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.order)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = len(m.order) - 1
		case key.Matches(msg, m.keys.Toggle):
			m.board.Toggle(idx)
		case key.Matches(msg, m.keys.Dec):
			m.board.Adjust(idx, -m.step)
		case key.Matches(msg, m.keys.Inc):
			m.board.Adjust(idx, m.step)
		case key.Matches(msg, m.keys.DecBig):
			m.board.Adjust(idx, -bigStep)
		case key.Matches(msg, m.keys.IncBig):
			m.board.Adjust(idx, bigStep)
		case key.Matches(msg, m.keys.Reset):
			m.board.Reset()
			m.status = "reset to defaults"
			m.err = nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Submit):
			if m.store == nil {
				m.err = fmt.Errorf("no output directory configured")
				return m, nil
			}
			m.status = "exporting..."
			return m, exportCmd(m.store, report.FromBoard(m.board))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case exportedMsg:
		m.lastExport = msg.time
		m.status = "report saved to " + msg.path
		m.err = nil
		m.log.Info("report exported",
			zap.String("path", msg.path),
			zap.Int("active", m.board.ActiveCount()))

	case errMsg:
		m.err = msg.err
		m.status = ""
		m.log.Error("report export failed", zap.Error(msg.err))
	}

	return m, nil
}

func (m Model) selected() int {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return -1
	}
	return m.order[m.cursor]
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorGroup    = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCursor   = lipgloss.Color("214")
	colorOk       = lipgloss.Color("78")
	colorCrit     = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

const (
	nameW       = 28
	previewW    = 58
	sideBySideW = 110
)

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	title := m.renderTitleBar(contentWidth)
	sections = append(sections, title)
	top := lipgloss.Height(title)

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
		top += lipgloss.Height(errBox)
	}

	var panels string
	var cursorRow int
	if contentWidth >= sideBySideW {
		var left string
		left, cursorRow = m.renderSensorPanel(contentWidth - previewW)
		right := m.renderPreviewPanel(previewW)
		panels = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		var left string
		left, cursorRow = m.renderSensorPanel(contentWidth)
		right := m.renderPreviewPanel(contentWidth)
		panels = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	sections = append(sections, panels)

	sections = append(sections, m.renderStatus(contentWidth))
	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Keep the selected row on screen. +1 for the panel border.
	cursorLine := top + 1 + cursorRow

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	start := 0
	if cursorLine >= visibleLines-2 {
		start = cursorLine - visibleLines + 3
	}
	if maxStart := len(lines) - visibleLines; start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("CAR SENSORS")

	active := m.board.ActiveCount()
	ratio := 0.0
	if m.board.Len() > 0 {
		ratio = float64(active) / float64(m.board.Len())
	}
	count := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf(" %d/%d active", active, m.board.Len()))
	right := m.bar.ViewAs(ratio) + count

	if !m.lastExport.IsZero() {
		sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
		saved := lipgloss.NewStyle().
			Foreground(colorDim).
			Render("saved " + m.lastExport.Format("15:04:05"))
		right += sep + saved
	}

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

// renderSensorPanel renders the grouped checkbox/slider rows. It also
// returns the line of the selected row inside the panel content.
func (m Model) renderSensorPanel(totalWidth int) (string, int) {
	innerWidth := totalWidth - 4
	sliderW := innerWidth - nameW - 14
	if sliderW < 10 {
		sliderW = 10
	}
	if sliderW > 50 {
		sliderW = 50
	}

	groupS := lipgloss.NewStyle().Bold(true).Foreground(colorGroup)
	cursorS := lipgloss.NewStyle().Foreground(colorCursor).Bold(true)
	labelS := lipgloss.NewStyle().Foreground(colorLabel).Width(nameW)
	inactiveS := lipgloss.NewStyle().Foreground(colorDim).Width(nameW)
	checkOnS := lipgloss.NewStyle().Foreground(colorOk)
	checkOffS := lipgloss.NewStyle().Foreground(colorDim)

	var rows []string
	cursorRow := 0
	lastGroup := ""

	for pos, idx := range m.order {
		e := m.board.Entries[idx]

		if g := sensor.Group(e.Name); g != lastGroup {
			if lastGroup != "" {
				rows = append(rows, "")
			}
			rows = append(rows, groupS.Render(g))
			lastGroup = g
		}

		marker := "  "
		if pos == m.cursor {
			marker = cursorS.Render("› ")
			cursorRow = len(rows)
		}

		check := checkOffS.Render("[ ]")
		name := inactiveS.Render(chart.Truncate(e.Name, nameW))
		if e.Active {
			check = checkOnS.Render("[x]")
			name = labelS.Render(chart.Truncate(e.Name, nameW))
		}

		slider := chart.RenderSlider(e.Value, sliderW, e.Active)
		value := chart.RenderValue(e.Value, e.Active)

		rows = append(rows, marker+check+" "+name+" "+slider+" "+value)
	}

	panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panelContent)

	return panel, cursorRow
}

func (m Model) renderPreviewPanel(totalWidth int) string {
	titleS := lipgloss.NewStyle().Bold(true).Foreground(colorGroup)
	nameS := lipgloss.NewStyle().Foreground(colorLabel)

	rows := []string{titleS.Render("Performance Preview"), ""}
	for _, e := range m.board.Entries {
		tier := report.Classify(e.Value, e.Active)
		code := report.FormatCode(e.Letter, tier)
		rows = append(rows, nameS.Render(e.Name+":")+" "+chart.RenderCode(code, tier))
	}

	panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panelContent)
}

func (m Model) renderStatus(width int) string {
	text := m.status
	if text == "" {
		text = chart.RenderLegend(nil)
	}
	return lipgloss.NewStyle().
		Foreground(colorDim).
		Width(width).
		Padding(0, 1).
		Render(text)
}

func (m Model) renderFooter(width int) string {
	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(m.help.View(m.keys))
}
