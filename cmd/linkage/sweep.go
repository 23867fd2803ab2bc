package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/sweep"
)

func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep <file>",
		Short: "Turn one motor through a range of angles and print the path of a link",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().String("motor", "", "Motor to drive (default: the only motor)")
	sweepCmd.Flags().Float64("from", 0, "First angle in degrees")
	sweepCmd.Flags().Float64("to", 360, "Last angle in degrees")
	sweepCmd.Flags().Int("steps", 37, "Number of angles, both ends included")
	sweepCmd.Flags().Float64("dt", 0, "Sample the motor profile every dt time units instead of --from/--to")
	sweepCmd.Flags().Int("workers", 1, "Parallel workers (>=1)")
	sweepCmd.Flags().String("link", "", "Link whose pose is printed (default: every link)")
	sweepCmd.Flags().Bool("yaml", false, "Print frames as YAML")

	return sweepCmd
}

// yamlFrame is the YAML form of a sweep frame.
type yamlFrame struct {
	Angle       float64               `yaml:"angle"`
	Cost        float64               `yaml:"cost"`
	Degenerate  bool                  `yaml:"degenerate,omitempty"`
	Poses       map[string][3]float64 `yaml:"poses,flow"`
	Unspecified []string              `yaml:"unspecified,omitempty,flow"`
}

func runSweep(cmd *cobra.Command, args []string) error {
	a, err := load(cmd, args[0])
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	motorName, _ := flags.GetString("motor")
	from, _ := flags.GetFloat64("from")
	to, _ := flags.GetFloat64("to")
	steps, _ := flags.GetInt("steps")
	dt, _ := flags.GetFloat64("dt")
	workers, _ := flags.GetInt("workers")
	linkName, _ := flags.GetString("link")
	asYAML, _ := flags.GetBool("yaml")
	if steps < 1 {
		return fmt.Errorf("invalid --steps %d, want >= 1", steps)
	}
	if workers < 1 {
		return fmt.Errorf("invalid --workers %d, want >= 1", workers)
	}

	m, err := findMotor(a, motorName)
	if err != nil {
		return err
	}
	var links []*mechanism.Link
	if linkName == "" {
		links = a.Links()
	} else if l := a.Link(linkName); l != nil {
		links = []*mechanism.Link{l}
	} else {
		return fmt.Errorf("unknown link %q", linkName)
	}

	var angles []float64
	if dt > 0 {
		angles = sweep.Timeline(m, 0, dt, steps)
	} else {
		angles = sweep.Angles(from*math.Pi/180, to*math.Pi/180, steps)
	}
	sopts, err := solverOptions(cmd)
	if err != nil {
		return err
	}

	frames, err := sweep.Run(cmd.Context(), a, m, angles,
		sweep.WithWorkers(workers), sweep.WithSolverOptions(sopts...))
	if err != nil {
		return err
	}

	if asYAML {
		return writeFramesYAML(cmd.OutOrStdout(), frames, links)
	}

	return writeFrames(cmd.OutOrStdout(), frames, links)
}

func writeFrames(w io.Writer, frames []sweep.Frame, links []*mechanism.Link) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "angle\tcost\tlink\tx\ty\tangle")
	for _, f := range frames {
		for _, l := range links {
			p := f.Poses[l.Name()]
			fmt.Fprintf(tw, "%.2f\t%.3f\t%s\t%.4f\t%.4f\t%.2f\n",
				degrees(f.Angle), f.Cost, l.Name(), p.Origin.X, p.Origin.Y, degrees(geom.NormalizeAngle(p.Angle)))
		}
	}

	return tw.Flush()
}

func writeFramesYAML(w io.Writer, frames []sweep.Frame, links []*mechanism.Link) error {
	out := make([]yamlFrame, len(frames))
	for i, f := range frames {
		yf := yamlFrame{
			Angle:       degrees(f.Angle),
			Cost:        f.Cost,
			Degenerate:  f.Degenerate,
			Poses:       make(map[string][3]float64, len(links)),
			Unspecified: f.Unspecified,
		}
		for _, l := range links {
			p := f.Poses[l.Name()]
			yf.Poses[l.Name()] = [3]float64{p.Origin.X, p.Origin.Y, degrees(geom.NormalizeAngle(p.Angle))}
		}
		out[i] = yf
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}

	return enc.Close()
}
