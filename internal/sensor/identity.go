package sensor

import "strings"

// groupMap maps name keywords to the panel a sensor is shown in.
// First match wins, so more specific keywords go first.
var groupMap = []struct {
	keyword string
	group   string
}{
	{"battery", "Battery"},
	{"fuel", "Fuel"},
	{"oil", "Oil"},
	{"engine", "Engine"},
	{"airflow", "Engine"},
	{"oxygen", "Engine"},
	{"ignition", "Engine"},
	{"particulate", "Engine"},
	{"transmission", "Drivetrain"},
	{"speed", "Drivetrain"},
	{"suspension", "Drivetrain"},
	{"wheels", "Drivetrain"},
	{"light", "Cabin"},
	{"clima", "Cabin"},
	{"sound", "Cabin"},
}

// Group returns the display group for a sensor name.
func Group(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range groupMap {
		if strings.Contains(lower, entry.keyword) {
			return entry.group
		}
	}
	return "Sensor"
}
