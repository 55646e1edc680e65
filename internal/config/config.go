package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultPath      = "carsensors.yaml"
	DefaultOutputDir = "."
	DefaultStep      = 1

	// EnvOutputDir overrides output_dir when set.
	EnvOutputDir = "CARSENSORS_OUTPUT_DIR"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full configuration tree.
type Config struct {
	// OutputDir is the directory reports are exported into.
	OutputDir string `yaml:"output_dir"`

	// FileName is the name of the exported report.
	FileName string `yaml:"file_name"`

	// Step is how far one left/right key press moves a slider.
	Step int `yaml:"step"`

	// Presets set the initial state of individual sensors.
	Presets []Preset `yaml:"presets"`
}

// Preset is the initial state of one sensor.
type Preset struct {
	// Sensor is a registry name or code letter.
	Sensor string `yaml:"sensor"`
	Active bool   `yaml:"active"`
	// Value defaults to the slider default when omitted.
	Value *int `yaml:"value"`
}

// Load reads and parses the YAML config file at path. A missing file
// at DefaultPath yields the defaults; any other missing path is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	if dir := os.Getenv(EnvOutputDir); dir != "" {
		cfg.OutputDir = dir
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Parse parses YAML bytes without touching the filesystem or environment.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		FileName:  store.FileName,
		Step:      DefaultStep,
	}
}

func validate(cfg *Config) error {
	if cfg.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is required", ErrInvalid)
	}
	if cfg.FileName == "" {
		return fmt.Errorf("%w: file_name is required", ErrInvalid)
	}
	if cfg.Step < 1 || cfg.Step > sensor.MaxValue {
		return fmt.Errorf("%w: step must be between 1 and %d", ErrInvalid, sensor.MaxValue)
	}
	for i, p := range cfg.Presets {
		if _, _, err := sensor.Lookup(p.Sensor); err != nil {
			return fmt.Errorf("%w: presets[%d]: %v", ErrInvalid, i, err)
		}
		if p.Value != nil && (*p.Value < sensor.MinValue || *p.Value > sensor.MaxValue) {
			return fmt.Errorf("%w: presets[%d]: value %d outside %d..%d",
				ErrInvalid, i, *p.Value, sensor.MinValue, sensor.MaxValue)
		}
	}
	return nil
}

// Apply writes every preset onto the board.
func (c *Config) Apply(b *sensor.Board) error {
	for _, p := range c.Presets {
		_, idx, err := sensor.Lookup(p.Sensor)
		if err != nil {
			return err
		}
		s := sensor.State{Active: p.Active, Value: sensor.DefaultValue}
		if p.Value != nil {
			s.Value = *p.Value
		}
		b.Apply(idx, s)
	}
	return nil
}
