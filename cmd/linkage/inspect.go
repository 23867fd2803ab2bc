package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linkage/topology"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the constraint topology and validation warnings of a mechanism",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	a, err := load(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	r := topology.Analyze(a)
	fmt.Fprintf(out, "links:      %d\n", r.Links)
	fmt.Fprintf(out, "joints:     %d\n", r.Joints)
	fmt.Fprintf(out, "loops:      %d\n", r.Loops)
	fmt.Fprintf(out, "dof:        %d\n", r.DOF)
	fmt.Fprintf(out, "motors:     %d\n", len(a.Motors()))
	for i, c := range r.Components {
		fmt.Fprintf(out, "component %d: %s\n", i, strings.Join(c, ", "))
	}
	if len(r.Detached) > 0 {
		fmt.Fprintf(out, "detached:   %s\n", strings.Join(r.Detached, ", "))
	}
	for _, w := range a.Validate().Warnings {
		fmt.Fprintf(out, "warning:    %v\n", w)
	}

	return nil
}
