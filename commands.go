package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luki/carsensors/internal/report"
	"github.com/luki/carsensors/internal/sensor"
	"github.com/luki/carsensors/internal/store"
	"github.com/luki/carsensors/internal/viewer"
)

func (a *app) reportCmd() *cobra.Command {
	var (
		sets   []string
		offs   []string
		export bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the CSV report without the interactive form",
		Long: `Builds the report from config presets plus --set and --off flags and
prints it to stdout, writes it to FILE with --output FILE, or writes it to
the configured output directory with --export.

Sensors are named by registry name or code letter:
  carsensors report --set "Engine RPM=85" --set B=30 --off A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			board, err := a.initialBoard(cfg)
			if err != nil {
				return err
			}
			for _, s := range sets {
				idx, v, err := parseSet(s)
				if err != nil {
					return err
				}
				// Programmatic input is not bounded by the slider.
				board.Apply(idx, sensor.State{Active: true, Value: v})
			}
			for _, name := range offs {
				_, idx, err := sensor.Lookup(name)
				if err != nil {
					return err
				}
				board.Apply(idx, sensor.State{Active: false, Value: board.Entries[idx].Value})
			}

			if !export {
				return writeReport(cmd, output, board)
			}

			doc := report.FromBoard(board)
			ds, err := store.New(cfg.OutputDir, cfg.FileName)
			if err != nil {
				return err
			}
			path, err := ds.Export(doc)
			if err != nil {
				return err
			}
			a.logger.Info("report exported", zap.String("path", path), zap.Int("active", board.ActiveCount()))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "activate a sensor with a value: NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&offs, "off", nil, "deactivate a sensor (repeatable)")
	cmd.Flags().BoolVarP(&export, "export", "e", false, "write the report file into the output directory")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "write the report to FILE, - for stdout")
	cmd.MarkFlagsMutuallyExclusive("export", "output")
	return cmd
}

// writeReport writes the board's report to path, or to the command's
// stdout when path is "-".
func writeReport(cmd *cobra.Command, path string, board *sensor.Board) error {
	if path == "-" || path == "" {
		return report.Write(cmd.OutOrStdout(), board.Definitions(), board.States())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	if err := report.Write(f, board.Definitions(), board.States()); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

// parseSet parses "NAME=VALUE" where NAME is a sensor name or letter.
func parseSet(s string) (int, int, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return 0, 0, fmt.Errorf("--set %q: want NAME=VALUE", s)
	}
	_, idx, err := sensor.Lookup(s[:i])
	if err != nil {
		return 0, 0, fmt.Errorf("--set %q: %w", s, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return 0, 0, fmt.Errorf("--set %q: value must be an integer", s)
	}
	return idx, v, nil
}

func (a *app) codeCmd() *cobra.Command {
	var inactive bool

	cmd := &cobra.Command{
		Use:   "code LETTER VALUE",
		Short: "Print the performance code for one sensor letter and value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := sensor.Lookup(args[0])
			if err != nil {
				return err
			}
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("value %q must be an integer", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.PerformanceCode(d.Letter, v, !inactive))
			return nil
		},
	}
	cmd.Flags().BoolVar(&inactive, "inactive", false, "treat the sensor as inactive")
	return cmd
}

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [FILE]",
		Short: "Browse an exported report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				ds, err := store.New(cfg.OutputDir, cfg.FileName)
				if err != nil {
					return err
				}
				path = ds.Path()
			}
			a.logger.Debug("opening report", zap.String("path", path))
			return viewer.Run(path)
		},
	}
}

func (a *app) sensorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sensors",
		Short: "List the sensor registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range sensor.Definitions() {
				fmt.Fprintf(out, "%c  %-30s %s\n", d.Letter, d.Name, sensor.Group(d.Name))
			}
			return nil
		},
	}
}
