package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/cosim-backend/cosim-backend/sim/trace"
)

// printTraceSummary writes the aggregate trace statistics to w.
func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Steps                : %d (advance %d, iteration %d, rejected %d)\n",
		s.TotalSteps, s.TimeAdvances, s.EventIterations, s.Rejected)
	fmt.Fprintf(w, "Fired Events         : %d (default %d)\n", s.FiredEvents, s.FiredDefaults)
	fmt.Fprintf(w, "Insertions           : %d (accepted %d, vetoed %d, dropped %d)\n",
		s.Insertions, s.Accepted, s.Vetoes, s.Dropped)
	fmt.Fprintf(w, "Preemptions          : %d\n", s.Preemptions)
	outputs := make([]string, 0, len(s.OutputDeliveries))
	for name := range s.OutputDeliveries {
		outputs = append(outputs, name)
	}
	sort.Strings(outputs)
	for _, name := range outputs {
		fmt.Fprintf(w, "  %-24s : %d\n", name, s.OutputDeliveries[name])
	}
}
