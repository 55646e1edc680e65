// Package sensor holds the fixed registry of simulated car sensors and
// the per-sensor state (active flag + slider value) the form edits.
package sensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSensor is returned by Lookup when no sensor matches.
var ErrUnknownSensor = errors.New("unknown sensor")

// Definition is one entry of the registry.
type Definition struct {
	Name   string // e.g. "Engine RPM"
	Letter byte   // 'A'..'V', assigned by position
}

// Registry order drives the code letters, so entries must only ever be
// appended together with a new letter.
var sensorNames = [...]string{
	"Engine RPM",
	"Mass Airflow Sensor",
	"Battery Consumption Average",
	"Battery End of life Sensor",
	"Oxygen Sensor",
	"Transmission Status",
	"Engine Load",
	"Ignition Timing",
	"Fuel Consumption Rate",
	"Fuel Pressure",
	"Fuel Level",
	"Vehicle Speed",
	"Suspension Status",
	"Particulate filter sensor",
	"Air Wheels Sensor",
	"Oil Level",
	"Oil Pressure",
	"Oil Temperature",
	"Ambien Light Sensor",
	"Exterior Light Sensor",
	"Clima Enviorment Sensor",
	"Sound System Sensor",
}

// Count is the number of sensors in the registry.
const Count = len(sensorNames)

var definitions = func() [Count]Definition {
	var defs [Count]Definition
	for i, name := range sensorNames {
		defs[i] = Definition{Name: name, Letter: byte('A' + i)}
	}
	return defs
}()

// Definitions returns the ordered registry. The slice is a copy.
func Definitions() []Definition {
	out := make([]Definition, Count)
	copy(out, definitions[:])
	return out
}

// Lookup resolves a sensor by case-insensitive name or by its single
// code letter. It returns the definition and its registry index.
func Lookup(key string) (Definition, int, error) {
	key = strings.TrimSpace(key)
	if len(key) == 1 {
		l := strings.ToUpper(key)[0]
		if l >= 'A' && int(l-'A') < Count {
			return definitions[l-'A'], int(l - 'A'), nil
		}
	}
	for i, d := range definitions {
		if strings.EqualFold(d.Name, key) {
			return d, i, nil
		}
	}
	return Definition{}, -1, fmt.Errorf("%w: %q", ErrUnknownSensor, key)
}
