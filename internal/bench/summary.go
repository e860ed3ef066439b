package bench

import (
	"fmt"
	"strings"
)

// Summary returns a formatted report of r.
func (r *Result) Summary() string {
	var b strings.Builder
	name := r.Workload.Name
	if name == "" {
		name = "bench"
	}
	fmt.Fprintf(&b, "Benchmark: %s (elements=%d remove_ratio=%.2f seed=%d)\n",
		name, r.Workload.Elements, r.Workload.RemoveRatio, r.Workload.Seed)
	fmt.Fprintf(&b, "  Duration:       %v\n", r.Duration)
	fmt.Fprintf(&b, "  Final size:     %d\n", r.FinalSize)
	fmt.Fprintf(&b, "  Buckets:        %d\n", r.FinalBuckets)
	fmt.Fprintf(&b, "  Load factor:    %.4f\n", r.LoadFactor)
	fmt.Fprintf(&b, "  Rehashes:       %d\n", r.Rehashes)
	fmt.Fprintf(&b, "  Chains:         max=%d mean=%.3f empty=%d\n",
		r.Chains.MaxLength, r.Chains.MeanLength, r.Chains.EmptyBuckets)

	for _, p := range r.Phases {
		fmt.Fprintf(&b, "\nPhase: %s\n", p.Phase)
		fmt.Fprintf(&b, "  Ops:            %d (hits %d)\n", p.Ops, p.Hits)
		fmt.Fprintf(&b, "  Throughput:     %.0f ops/sec\n", p.OpsPerSec)
		b.WriteString("  Latency:\n")
		fmt.Fprintf(&b, "    Min:          %v\n", p.Latency.Min)
		fmt.Fprintf(&b, "    Avg:          %v\n", p.Latency.Avg)
		fmt.Fprintf(&b, "    P50:          %v\n", p.Latency.P50)
		fmt.Fprintf(&b, "    P95:          %v\n", p.Latency.P95)
		fmt.Fprintf(&b, "    P99:          %v\n", p.Latency.P99)
		fmt.Fprintf(&b, "    Max:          %v\n", p.Latency.Max)
	}
	return b.String()
}
