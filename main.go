package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luki/carsensors/internal/config"
	"github.com/luki/carsensors/internal/form"
	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
)

// app holds the global flags and the logger shared by all commands.
type app struct {
	configPath string
	outputDir  string
	logFile    string
	verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "carsensors",
		Short: "Simulated car sensor form with performance codes and CSV export",
		Long: `carsensors lets you toggle and adjust 22 simulated car sensors, preview
their performance codes live, and export them as car-sensor-report.csv.

Run without arguments to open the interactive form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUIs own the terminal, so they only log to a file.
			interactive := cmd.Name() == "carsensors" || cmd.Name() == "view"
			logger, err := a.buildLogger(interactive)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		Args: cobra.NoArgs,
		RunE: a.runForm,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default "+config.DefaultPath+" when present)")
	flags.StringVar(&a.outputDir, "out", "", "output directory for exported reports")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.reportCmd(),
		a.codeCmd(),
		a.viewCmd(),
		a.sensorsCmd(),
	)
	return root
}

func (a *app) buildLogger(interactive bool) (*zap.Logger, error) {
	if interactive && a.logFile == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if a.logFile != "" {
		cfg.OutputPaths = []string{a.logFile}
		cfg.ErrorOutputPaths = []string{a.logFile}
	}
	return cfg.Build()
}

// loadConfig loads the config file and applies flag overrides.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.outputDir != "" {
		cfg.OutputDir = a.outputDir
	}
	a.logger.Debug("config loaded",
		zap.String("path", a.configPath),
		zap.String("output_dir", cfg.OutputDir),
		zap.Int("presets", len(cfg.Presets)))
	return cfg, nil
}

// initialBoard returns a default board with the config presets applied.
func (a *app) initialBoard(cfg *config.Config) (*sensor.Board, error) {
	b := sensor.NewBoard()
	if err := cfg.Apply(b); err != nil {
		return nil, err
	}
	for _, p := range cfg.Presets {
		a.logger.Debug("preset applied", zap.String("sensor", p.Sensor), zap.Bool("active", p.Active))
	}
	return b, nil
}

func (a *app) runForm(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	board, err := a.initialBoard(cfg)
	if err != nil {
		return err
	}
	ds, err := store.New(cfg.OutputDir, cfg.FileName)
	if err != nil {
		return err
	}
	return form.Run(form.New(form.Options{
		Board:  board,
		Store:  ds,
		Step:   cfg.Step,
		Logger: a.logger,
	}))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
