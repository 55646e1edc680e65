package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/luki/carsensors/internal/sensor"
)

// HeaderLine is the first line of every report.
const HeaderLine = "Sensor,Performance"

// header returns a fresh copy of the header fields.
func header() []string {
	return strings.Split(HeaderLine, ",")
}

const fieldCount = 2

var (
	// ErrBadHeader means the document does not start with HeaderLine.
	ErrBadHeader = errors.New("report: bad header")
	// ErrBadCode means a row holds something that is not a performance code.
	ErrBadCode = errors.New("report: bad performance code")
)

// Row is one parsed data line of a report.
type Row struct {
	Sensor string
	Code   string
	Letter byte
	Tier   Tier
}

// Generate builds the report document. defs[i] describes states[i]; when
// the lengths differ only the common prefix is reported.
func Generate(defs []sensor.Definition, states []sensor.State) string {
	var sb strings.Builder
	sb.WriteString(HeaderLine)
	sb.WriteByte('\n')
	for i := 0; i < len(defs) && i < len(states); i++ {
		sb.WriteString(defs[i].Name)
		sb.WriteByte(',')
		sb.WriteString(PerformanceCode(defs[i].Letter, states[i].Value, states[i].Active))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FromBoard builds the report for the current board.
func FromBoard(b *sensor.Board) string {
	return Generate(b.Definitions(), b.States())
}

// Write streams the same document as Generate through a CSV writer.
func Write(w io.Writer, defs []sensor.Definition, states []sensor.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return err
	}
	for i := 0; i < len(defs) && i < len(states); i++ {
		code := PerformanceCode(defs[i].Letter, states[i].Value, states[i].Active)
		if err := cw.Write([]string{defs[i].Name, code}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var codeRe = regexp.MustCompile(`^0x([A-Z])([1-4]) \((.+)\)$`)

// ParseCode splits a performance code into letter and tier.
func ParseCode(code string) (byte, Tier, error) {
	m := codeRe.FindStringSubmatch(code)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCode, code)
	}
	digit, _ := strconv.Atoi(m[2])
	t := Tier(digit)
	if m[3] != t.Label() {
		return 0, 0, fmt.Errorf("%w: %q: label does not match tier %d", ErrBadCode, code, digit)
	}
	return m[1][0], t, nil
}

// Parse reads a report document back into rows.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty document", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("report: read header: %w", err)
	}
	if len(head) != fieldCount || strings.Join(head, ",") != HeaderLine {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, strings.Join(head, ","))
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("report: read row %d: %w", len(rows)+1, err)
		}
		if len(rec) != fieldCount {
			return nil, fmt.Errorf("report: row %d: want %d fields, got %d", len(rows)+1, fieldCount, len(rec))
		}
		letter, tier, err := ParseCode(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, Row{Sensor: rec[0], Code: rec[1], Letter: letter, Tier: tier})
	}
	return rows, nil
}

// Summary counts rows per tier.
func Summary(rows []Row) map[Tier]int {
	out := make(map[Tier]int, len(tierLabels))
	for _, r := range rows {
		out[r.Tier]++
	}
	return out
}
