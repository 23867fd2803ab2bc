package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linkage/builder"
	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/solver"
)

func newSolveCmd() *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve a mechanism at the given motor angles and print every link pose",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	solveCmd.Flags().StringArray("angle", nil, "Motor angle in degrees, as motor=deg (repeatable)")
	solveCmd.Flags().Bool("yaml", false, "Print the solved mechanism as a YAML document")

	return solveCmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	a, err := load(cmd, args[0])
	if err != nil {
		return err
	}
	angles, err := cmd.Flags().GetStringArray("angle")
	if err != nil {
		return fmt.Errorf("failed to read --angle flag: %w", err)
	}
	asYAML, err := cmd.Flags().GetBool("yaml")
	if err != nil {
		return fmt.Errorf("failed to read --yaml flag: %w", err)
	}
	opts, err := solverOptions(cmd)
	if err != nil {
		return err
	}

	for _, s := range angles {
		name, rad, err := parseAngle(s)
		if err != nil {
			return err
		}
		m, err := findMotor(a, name)
		if err != nil {
			return err
		}
		m.SetAngle(rad)
	}

	res, err := solver.New(opts...).Solve(a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asYAML {
		return builder.Encode(out, a)
	}
	printResult(out, res)

	return printPoses(out, a)
}

func printResult(w io.Writer, res solver.Result) {
	fmt.Fprintf(w, "solved: %t  cost: %.3f  groups: %d\n", res.Solved(), res.Cost, res.Groups)
	for _, r := range res.Redundant {
		fmt.Fprintf(w, "redundant: %s-%s (%d joints, %d angles)\n", r.Base, r.Target, r.Coaxial, r.Angular)
	}
	for _, l := range res.Unspecified {
		fmt.Fprintf(w, "unspecified: %s\n", l.Name())
	}
}

func printPoses(w io.Writer, a *mechanism.Assembly) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "link\tx\ty\tangle")
	for _, l := range a.Links() {
		p := l.Pose()
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.2f\n", l.Name(), p.Origin.X, p.Origin.Y, degrees(geom.NormalizeAngle(p.Angle)))
	}

	return tw.Flush()
}
