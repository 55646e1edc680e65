// Package chart renders slider gauges with tier threshold marks, colored
// performance codes and tier summary bars.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/carsensors/internal/report"
	"github.com/luki/carsensors/internal/sensor"
)

// TierColor returns the display color of a tier.
func TierColor(t report.Tier) lipgloss.Color {
	switch t {
	case report.TierHigh:
		return lipgloss.Color("78") // soft green
	case report.TierMedium:
		return lipgloss.Color("220") // yellow
	case report.TierLow:
		return lipgloss.Color("208") // orange
	default:
		return lipgloss.Color("240") // dim
	}
}

// RenderCode renders a performance code in its tier color.
func RenderCode(code string, t report.Tier) string {
	style := lipgloss.NewStyle().Foreground(TierColor(t))
	if t == report.TierHigh {
		style = style.Bold(true)
	}
	return style.Render(code)
}

// sliderPos maps a slider value onto a track of the given width.
func sliderPos(value, width int) int {
	span := sensor.MaxValue - sensor.MinValue
	pos := (width - 1) * (value - sensor.MinValue) / span
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	return pos
}

// RenderSlider renders a slider track with the medium tier bounds marked
// and the knob drawn in the tier color. Inactive sliders are drawn dim.
func RenderSlider(value, width int, active bool) string {
	if width <= 0 {
		return ""
	}

	lowPos := sliderPos(report.MediumMin, width)
	highPos := sliderPos(report.MediumMax, width)
	curPos := sliderPos(value, width)

	tier := report.Classify(value, active)
	knobS := lipgloss.NewStyle().Foreground(TierColor(tier)).Bold(active)
	fillS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	trackS := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	markS := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if !active {
		fillS = trackS
	}

	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == curPos:
			sb.WriteString(knobS.Render("◆"))
		case i == lowPos || i == highPos:
			sb.WriteString(markS.Render("▪"))
		case i < curPos:
			sb.WriteString(fillS.Render("━"))
		default:
			sb.WriteString(trackS.Render("·"))
		}
	}
	return sb.String()
}

// RenderValue renders the numeric slider value, dimmed when inactive.
func RenderValue(value int, active bool) string {
	s := fmt.Sprintf("%3d", value)
	color := TierColor(report.Classify(value, active))
	return lipgloss.NewStyle().Foreground(color).Render(s)
}

// tierOrder is the order tiers appear in summary bars and legends.
var tierOrder = []report.Tier{report.TierHigh, report.TierMedium, report.TierLow, report.TierInactive}

// RenderTierBar renders a horizontal bar split proportionally by tier
// counts. Every tier with a non-zero count gets at least one cell while
// the width allows it; narrower bars show only the largest tier.
func RenderTierBar(counts map[report.Tier]int, width int) string {
	if width <= 0 {
		return ""
	}
	total, present := 0, 0
	largest := 0
	for i, t := range tierOrder {
		total += counts[t]
		if counts[t] > 0 {
			present++
		}
		if counts[t] > counts[tierOrder[largest]] {
			largest = i
		}
	}
	if total == 0 {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		return dim.Render(strings.Repeat("╌", width))
	}

	cells := make([]int, len(tierOrder))
	if width < present {
		cells[largest] = width
	} else {
		used := 0
		for i, t := range tierOrder {
			if counts[t] == 0 {
				continue
			}
			n := counts[t] * width / total
			if n == 0 {
				n = 1
			}
			cells[i] = n
			used += n
		}
		cells[largest] += width - used
		// Minimum cells can overdraw the largest tier; take the excess
		// from whichever tier still has more than one cell.
		for cells[largest] < 1 {
			big := widestCell(cells, largest)
			cells[big]--
			cells[largest]++
		}
	}

	var sb strings.Builder
	for i, t := range tierOrder {
		if cells[i] <= 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(TierColor(t))
		sb.WriteString(style.Render(strings.Repeat("█", cells[i])))
	}
	return sb.String()
}

// widestCell returns the index of the largest cell other than skip.
func widestCell(cells []int, skip int) int {
	best := -1
	for i, n := range cells {
		if i != skip && (best < 0 || n > cells[best]) {
			best = i
		}
	}
	return best
}

// RenderLegend renders "██ high ██ medium ..." with counts when given.
func RenderLegend(counts map[report.Tier]int) string {
	dimS := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	var parts []string
	for _, t := range tierOrder {
		sw := lipgloss.NewStyle().Foreground(TierColor(t)).Render("██")
		label := strings.ToLower(strings.TrimSuffix(t.Label(), " Performance"))
		if counts != nil {
			label = fmt.Sprintf("%s %d", label, counts[t])
		}
		parts = append(parts, sw+dimS.Render(" "+label))
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to w columns, marking the cut with an
// ellipsis when there is room for one.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}
