// Command linkage solves planar mechanisms described in YAML files.
//
//	linkage inspect fourbar.yaml
//	linkage solve fourbar.yaml --angle M=120
//	linkage sweep fourbar.yaml --motor M --from 0 --to 360 --steps 73 --workers 4
//
// Angles on the command line are in degrees whatever units the file uses.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/linkage/builder"
	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/solver"
)

var version = "0.1.0-dev"

// traceKeys lists the tracer keys the --trace flag applies to.
var traceKeys = []string{"linkage.builder", "linkage.solver", "linkage.sweep"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "linkage",
		Short:   "Solve planar linkages described in YAML",
		Version: version,
		Long: `linkage reconstructs the pose of every link of a planar mechanism
(revolute joints, sliders and motors) in closed form, one motor setting at a time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := cmd.Flags().GetString("trace")
			if err != nil {
				return fmt.Errorf("failed to read --trace flag: %w", err)
			}
			return setTraceLevel(level)
		},
	}
	rootCmd.PersistentFlags().Bool("strict", false, "Reject mechanisms that validate with warnings")
	rootCmd.PersistentFlags().String("units", builder.UnitsDegrees, "Angle units for files without a units key: deg|rad")
	rootCmd.PersistentFlags().String("trace", "error", "Trace level: error|info|debug")
	rootCmd.PersistentFlags().Float64("tolerance", 0, "Collinearity tolerance for branch selection")
	rootCmd.PersistentFlags().Bool("no-secondary", false, "Disable position-only merging of leftover groups")

	rootCmd.AddCommand(
		newInspectCmd(),
		newSolveCmd(),
		newSweepCmd(),
	)

	return rootCmd
}

// load builds the mechanism file named by path with the root flags applied.
func load(cmd *cobra.Command, path string) (*mechanism.Assembly, error) {
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, fmt.Errorf("failed to read --strict flag: %w", err)
	}
	units, err := cmd.Flags().GetString("units")
	if err != nil {
		return nil, fmt.Errorf("failed to read --units flag: %w", err)
	}
	if units != builder.UnitsDegrees && units != builder.UnitsRadians {
		return nil, fmt.Errorf("invalid --units %q: %w", units, builder.ErrBadUnits)
	}

	opts := []builder.BuilderOption{builder.WithUnits(units)}
	if strict {
		opts = append(opts, builder.WithStrict())
	}

	return builder.Load(path, opts...)
}

// solverOptions translates the root flags into solver options.
func solverOptions(cmd *cobra.Command) ([]solver.Option, error) {
	tol, err := cmd.Flags().GetFloat64("tolerance")
	if err != nil {
		return nil, fmt.Errorf("failed to read --tolerance flag: %w", err)
	}
	if tol < 0 || math.IsNaN(tol) {
		return nil, fmt.Errorf("invalid --tolerance %v", tol)
	}
	noSecondary, err := cmd.Flags().GetBool("no-secondary")
	if err != nil {
		return nil, fmt.Errorf("failed to read --no-secondary flag: %w", err)
	}

	return []solver.Option{
		solver.WithCollinearTolerance(tol),
		solver.WithSecondaryMerge(!noSecondary),
	}, nil
}

// findMotor resolves a motor by name; an empty name selects the only motor.
func findMotor(a *mechanism.Assembly, name string) (*mechanism.Motor, error) {
	if name == "" {
		ms := a.Motors()
		if len(ms) != 1 {
			return nil, fmt.Errorf("--motor is required when the mechanism has %d motors", len(ms))
		}
		return ms[0], nil
	}
	m := a.Motor(name)
	if m == nil {
		return nil, fmt.Errorf("unknown motor %q", name)
	}

	return m, nil
}

// parseAngle splits "name=degrees".
func parseAngle(s string) (string, float64, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("invalid --angle %q, want motor=degrees", s)
	}
	deg, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --angle %q: %w", s, err)
	}

	return name, deg * math.Pi / 180, nil
}

func setTraceLevel(level string) error {
	var l tracing.TraceLevel
	switch level {
	case "error":
		l = tracing.LevelError
	case "info":
		l = tracing.LevelInfo
	case "debug":
		l = tracing.LevelDebug
	default:
		return fmt.Errorf("invalid --trace %q, want error|info|debug", level)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}

	return nil
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
