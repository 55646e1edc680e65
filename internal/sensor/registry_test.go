package sensor

import (
	"errors"
	"testing"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	if len(defs) != 22 {
		t.Fatalf("expected 22 definitions, got %d", len(defs))
	}
	for i, d := range defs {
		if want := byte('A' + i); d.Letter != want {
			t.Errorf("definition %d (%s): letter %c, want %c", i, d.Name, d.Letter, want)
		}
	}
	if defs[0].Name != "Engine RPM" {
		t.Errorf("first sensor: got %q, want Engine RPM", defs[0].Name)
	}
	if defs[21].Name != "Sound System Sensor" || defs[21].Letter != 'V' {
		t.Errorf("last sensor: got %+v", defs[21])
	}

	defs[0].Name = "mutated"
	if Definitions()[0].Name != "Engine RPM" {
		t.Error("Definitions must return a copy")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key   string
		name  string
		index int
	}{
		{"Engine RPM", "Engine RPM", 0},
		{"engine rpm", "Engine RPM", 0},
		{"  Oil Level ", "Oil Level", 15},
		{"a", "Engine RPM", 0},
		{"V", "Sound System Sensor", 21},
		{"l", "Vehicle Speed", 11},
	}
	for _, tt := range tests {
		d, idx, err := Lookup(tt.key)
		if err != nil {
			t.Errorf("Lookup(%q): unexpected error %v", tt.key, err)
			continue
		}
		if d.Name != tt.name || idx != tt.index {
			t.Errorf("Lookup(%q) = %q/%d, want %q/%d", tt.key, d.Name, idx, tt.name, tt.index)
		}
	}

	for _, key := range []string{"W", "", "Turbo Boost"} {
		if _, idx, err := Lookup(key); !errors.Is(err, ErrUnknownSensor) || idx != -1 {
			t.Errorf("Lookup(%q): got idx=%d err=%v, want ErrUnknownSensor", key, idx, err)
		}
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Engine RPM", "Engine"},
		{"Mass Airflow Sensor", "Engine"},
		{"Battery Consumption Average", "Battery"},
		{"Fuel Consumption Rate", "Fuel"},
		{"Oil Temperature", "Oil"},
		{"Vehicle Speed", "Drivetrain"},
		{"Air Wheels Sensor", "Drivetrain"},
		{"Ambien Light Sensor", "Cabin"},
		{"Sound System Sensor", "Cabin"},
		{"Tyre Pressure", "Sensor"},
	}
	for _, tt := range tests {
		if got := Group(tt.name); got != tt.want {
			t.Errorf("Group(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
