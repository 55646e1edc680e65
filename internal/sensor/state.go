package sensor

// Slider bounds of the form. The report engine does not enforce them.
const (
	MinValue     = 0
	MaxValue     = 100
	DefaultValue = 50
)

// State is the user-controlled state of one sensor.
type State struct {
	Active bool
	Value  int
}

// DefaultState is the state every sensor starts in.
func DefaultState() State {
	return State{Active: false, Value: DefaultValue}
}

// Entry pairs a definition with its current state.
type Entry struct {
	Definition
	State
}

// Board is the ordered set of entries edited by the form, one per
// registry definition.
type Board struct {
	Entries []Entry
}

// NewBoard returns a board with every sensor in its default state.
func NewBoard() *Board {
	b := &Board{Entries: make([]Entry, Count)}
	for i, d := range definitions {
		b.Entries[i] = Entry{Definition: d, State: DefaultState()}
	}
	return b
}

// Len returns the number of entries.
func (b *Board) Len() int { return len(b.Entries) }

// Toggle flips the active flag of entry i. The value is kept.
func (b *Board) Toggle(i int) {
	if !b.valid(i) {
		return
	}
	b.Entries[i].Active = !b.Entries[i].Active
}

// Set moves the slider of entry i to v, clamped to the slider bounds.
// Inactive sliders are disabled and ignore the call.
func (b *Board) Set(i, v int) {
	if !b.valid(i) || !b.Entries[i].Active {
		return
	}
	b.Entries[i].Value = clamp(v)
}

// Adjust moves the slider of entry i by delta.
func (b *Board) Adjust(i, delta int) {
	if !b.valid(i) {
		return
	}
	b.Set(i, b.Entries[i].Value+delta)
}

// Apply replaces the state of entry i as-is, without clamping. Presets
// and programmatic input go through here.
func (b *Board) Apply(i int, s State) {
	if !b.valid(i) {
		return
	}
	b.Entries[i].State = s
}

// Reset returns every entry to its default state.
func (b *Board) Reset() {
	for i := range b.Entries {
		b.Entries[i].State = DefaultState()
	}
}

// Definitions returns the definitions in board order.
func (b *Board) Definitions() []Definition {
	out := make([]Definition, len(b.Entries))
	for i, e := range b.Entries {
		out[i] = e.Definition
	}
	return out
}

// States returns the states in board order.
func (b *Board) States() []State {
	out := make([]State, len(b.Entries))
	for i, e := range b.Entries {
		out[i] = e.State
	}
	return out
}

// ActiveCount returns how many sensors are active.
func (b *Board) ActiveCount() int {
	n := 0
	for _, e := range b.Entries {
		if e.Active {
			n++
		}
	}
	return n
}

func (b *Board) valid(i int) bool {
	return i >= 0 && i < len(b.Entries)
}

func clamp(v int) int {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}
