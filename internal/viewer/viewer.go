// Package viewer implements a read-only TUI for exported sensor reports,
// grouped by sensor panel with a per-tier summary.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/carsensors/internal/chart"
	"github.com/luki/carsensors/internal/report"
	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
)

// Run launches the report viewer for path.
func Run(path string) error {
	m := initModel(path)
	if m.err != nil {
		return m.err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
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
	colorCrit     = lipgloss.Color("196")
)

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	path   string
	rows   []report.Row
	counts map[report.Tier]int
	scroll int
	width  int
	height int
	err    error
}

func initModel(path string) model {
	m := model{path: path}
	m.load()
	return m
}

func (m *model) load() {
	rows, err := store.Load(m.path)
	if err != nil {
		m.err = err
		return
	}
	m.rows = rows
	m.counts = report.Summary(rows)
	m.err = nil
}

// ── Init / Update ────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case "r":
			m.load()
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.scroll > 0 {
				m.scroll--
			}
		case tea.MouseButtonWheelDown:
			m.scroll++
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.clampScroll()
	return m, nil
}

// clampScroll keeps the scroll offset inside the rendered content. Until
// the first WindowSizeMsg nothing is rendered and the offset is left alone.
func (m *model) clampScroll() {
	if m.width == 0 {
		return
	}
	if maxScroll := len(strings.Split(m.content(), "\n")) - m.visibleLines(); m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m model) visibleLines() int {
	if m.height < 5 {
		return 5
	}
	return m.height
}

// ── View ─────────────────────────────────────────────────────────────

func (m model) View() string {
	if m.width == 0 {
		return "  Loading..."
	}

	lines := strings.Split(m.content(), "\n")
	start := m.scroll
	if maxScroll := len(lines) - m.visibleLines(); start > maxScroll {
		start = maxScroll
	}
	if start < 0 {
		start = 0
	}
	end := start + m.visibleLines()
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

// content renders every section before the scroll window is applied.
func (m model) content() string {
	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitle(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Padding(0, 1).
			Render(fmt.Sprintf("ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(2, 0).
			Align(lipgloss.Center).
			Width(contentWidth).
			Render("No sensors in this report.")
		sections = append(sections, empty)
	} else {
		sections = append(sections, m.renderSummary(contentWidth))
		sections = append(sections, m.renderPanels(contentWidth)...)
	}

	sections = append(sections, m.renderFooter(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderTitle(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("SENSOR REPORT")

	file := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Render(m.path)

	info := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("  (%d sensors)", len(m.rows)))

	right := file + info

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

func (m model) renderSummary(width int) string {
	barWidth := width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	bar := chart.RenderTierBar(m.counts, barWidth)
	legend := chart.RenderLegend(m.counts)
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(bar + "\n" + legend)
}

func (m model) renderPanels(totalWidth int) []string {
	type group struct {
		name string
		rows []report.Row
	}
	groupMap := make(map[string]*group)
	var groupOrder []string

	for _, r := range m.rows {
		name := sensor.Group(r.Sensor)
		g, ok := groupMap[name]
		if !ok {
			g = &group{name: name}
			groupMap[name] = g
			groupOrder = append(groupOrder, name)
		}
		g.rows = append(g.rows, r)
	}

	labelW := 30
	labelS := lipgloss.NewStyle().Foreground(colorLabel).Width(labelW)
	dimS := lipgloss.NewStyle().Foreground(colorDim)

	var panels []string
	for _, name := range groupOrder {
		g := groupMap[name]

		rows := []string{lipgloss.NewStyle().Bold(true).Foreground(colorGroup).Render(g.name)}
		for _, r := range g.rows {
			letter := dimS.Render(fmt.Sprintf("%c ", r.Letter))
			rows = append(rows, letter+labelS.Render(chart.Truncate(r.Sensor, labelW))+" "+chart.RenderCode(r.Code, r.Tier))
		}

		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(totalWidth).
			Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
		panels = append(panels, panel)
	}
	return panels
}

func (m model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  j/k") + keyS.Render(":scroll") +
		dimS.Render("  home") + keyS.Render(":top") +
		dimS.Render("  r") + keyS.Render(":reload")

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(keys)
}
