// Package report derives per-sensor performance codes and assembles the
// CSV report document.
package report

import "fmt"

// Tier is the performance tier of a sensor. The numeric value is the
// digit used in the code.
type Tier int

const (
	TierHigh     Tier = 1
	TierMedium   Tier = 2
	TierLow      Tier = 3
	TierInactive Tier = 4
)

// Tier thresholds. Medium is inclusive on both ends.
const (
	MediumMin = 40
	MediumMax = 70
)

var tierLabels = map[Tier]string{
	TierHigh:     "High Performance",
	TierMedium:   "Medium Performance",
	TierLow:      "Low Performance",
	TierInactive: "Inactive",
}

// Label returns the human-readable tier label.
func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return "Unknown"
}

func (t Tier) String() string { return t.Label() }

// Classify returns the tier for a value. Values outside 0..100 are
// classified by the same comparisons.
func Classify(value int, active bool) Tier {
	switch {
	case !active:
		return TierInactive
	case value > MediumMax:
		return TierHigh
	case value >= MediumMin:
		return TierMedium
	default:
		return TierLow
	}
}

// FormatCode renders the code string for a letter and tier.
func FormatCode(letter byte, t Tier) string {
	return fmt.Sprintf("0x%c%d (%s)", letter, int(t), t.Label())
}

// PerformanceCode returns e.g. "0xA1 (High Performance)".
func PerformanceCode(letter byte, value int, active bool) string {
	return FormatCode(letter, Classify(value, active))
}
