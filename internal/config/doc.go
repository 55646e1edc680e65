// Package config loads the optional carsensors.yaml file.
//
// Top-level fields:
//   - output_dir: directory the report is exported into (default ".",
//     overridden by CARSENSORS_OUTPUT_DIR)
//   - file_name: report file name (default car-sensor-report.csv)
//   - step: slider movement per key press, 1..100 (default 1)
//   - presets []: initial sensor states: sensor (name or letter),
//     active, value (0..100, default 50)
//
// Load(path) applies defaults, then the file, then the environment, and
// validates the result. Presets are written onto a sensor.Board with
// Config.Apply.
package config
