package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosim-backend/cosim-backend/sim"
	"github.com/cosim-backend/cosim-backend/sim/scenario"
)

var describeScenario string

// describeCmd prints the scalar variables a scenario exposes
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List the scalar variables of a scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		return describe(cmd.OutOrStdout(), describeScenario)
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeScenario, "scenario", "simple", "Scenario to describe")
}

// describe writes the model description of the named scenario to w.
func describe(w io.Writer, name string) error {
	sc, err := scenario.New(name)
	if err != nil {
		return err
	}
	b := sim.NewBackend(sc)

	fmt.Fprintf(w, "Scenario: %s (%s)\n", name, scenario.Summary(name))
	fmt.Fprintf(w, "%-4s %-24s %-10s %-8s %s\n", "VR", "NAME", "CAUSALITY", "TYPE", "START")
	for _, v := range b.Slots().Variables() {
		start := "-"
		if v.Causality == sim.CausalityParameter {
			start = strconv.FormatFloat(v.Start, 'g', -1, 64)
		}
		fmt.Fprintf(w, "%-4d %-24s %-10s %-8s %s\n", v.ValueReference, v.Name, v.Causality, v.Type, start)
	}
	return nil
}
