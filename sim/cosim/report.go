package cosim

import (
	"fmt"
	"io"
	"math"
)

// Print writes a human-readable report of the run to w.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Co-Simulation Results ===")
	fmt.Fprintf(w, "Messages Sent        : %d\n", len(r.Sent))
	fmt.Fprintf(w, "Messages Delivered   : %d\n", len(r.Delivered))
	fmt.Fprintf(w, "DoStep Calls         : %d\n", r.Steps)

	if lat := r.Latency(); len(lat) > 0 {
		var sum, peak float64
		for _, l := range lat {
			sum += l.Delay()
			peak = math.Max(peak, l.Delay())
		}
		fmt.Fprintf(w, "Mean Latency         : %.6f s\n", sum/float64(len(lat)))
		fmt.Fprintf(w, "Max Latency          : %.6f s\n", peak)
	}

	if len(r.Delivered) == 0 {
		return
	}
	fmt.Fprintln(w, "--- Deliveries ---")
	for i, m := range r.match() {
		d := r.Delivered[i]
		latency := "?"
		if m != nil {
			latency = fmt.Sprintf("%.6f", d.Time-m.Time)
		}
		fmt.Fprintf(w, "t=%.6f  %-24s subject=%-6d latency=%s\n", d.Time, d.Output, d.Subject, latency)
	}
}
