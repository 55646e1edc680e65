package sensor

import "testing"

func TestNewBoardDefaults(t *testing.T) {
	b := NewBoard()
	if b.Len() != Count {
		t.Fatalf("expected %d entries, got %d", Count, b.Len())
	}
	for i, e := range b.Entries {
		if e.Active || e.Value != 50 {
			t.Errorf("entry %d: got %+v, want inactive/50", i, e.State)
		}
		if e.Letter != byte('A'+i) {
			t.Errorf("entry %d: letter %c", i, e.Letter)
		}
	}
	if b.ActiveCount() != 0 {
		t.Errorf("ActiveCount: got %d, want 0", b.ActiveCount())
	}
}

func TestBoardSliderDisabledWhileInactive(t *testing.T) {
	b := NewBoard()
	b.Set(0, 90)
	b.Adjust(0, 10)
	if b.Entries[0].Value != 50 {
		t.Errorf("inactive slider moved: got %d", b.Entries[0].Value)
	}

	b.Toggle(0)
	b.Set(0, 90)
	if !b.Entries[0].Active || b.Entries[0].Value != 90 {
		t.Errorf("after toggle+set: got %+v", b.Entries[0].State)
	}

	b.Toggle(0)
	if b.Entries[0].Active || b.Entries[0].Value != 90 {
		t.Errorf("toggle off should keep value: got %+v", b.Entries[0].State)
	}
}

func TestBoardClamp(t *testing.T) {
	b := NewBoard()
	b.Toggle(3)
	b.Adjust(3, 200)
	if b.Entries[3].Value != MaxValue {
		t.Errorf("Adjust up: got %d, want %d", b.Entries[3].Value, MaxValue)
	}
	b.Set(3, -7)
	if b.Entries[3].Value != MinValue {
		t.Errorf("Set below: got %d, want %d", b.Entries[3].Value, MinValue)
	}
}

func TestBoardApplyAndReset(t *testing.T) {
	b := NewBoard()
	b.Apply(5, State{Active: true, Value: 150})
	if got := b.States()[5]; got != (State{Active: true, Value: 150}) {
		t.Errorf("Apply should not clamp: got %+v", got)
	}
	b.Apply(99, State{Active: true})
	b.Toggle(-1)

	if b.ActiveCount() != 1 {
		t.Errorf("ActiveCount: got %d, want 1", b.ActiveCount())
	}

	b.Reset()
	for i, s := range b.States() {
		if s != DefaultState() {
			t.Errorf("after reset entry %d: %+v", i, s)
		}
	}

	defs := b.Definitions()
	if len(defs) != Count || defs[5].Name != "Transmission Status" {
		t.Errorf("Definitions: got %d entries, [5]=%+v", len(defs), defs[5])
	}
}
