package bench

import (
	"fmt"
	"io"
	"os"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

// WriteSolution writes a full solution report: header, the per-group
// bound/size table and the element assignment list.
func WriteSolution(w io.Writer, p *mdgp.Partition) error {
	inst := p.Instance()
	if _, err := fmt.Fprintf(w, "N = %d  G = %d  f = %f\n", inst.N, inst.K, p.Cost); err != nil {
		return err
	}
	for g := 0; g < inst.K; g++ {
		if _, err := fmt.Fprintf(w, "%5d   %5d   %5d\n", inst.LB[g], inst.UB[g], p.Sizes[g]); err != nil {
			return err
		}
	}
	for i := 0; i < inst.N; i++ {
		if _, err := fmt.Fprintf(w, "%5d   %5d\n", i, p.Assign[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes one summary line: instance name followed by the
// best, average and worst final cost across repetitions.
func WriteSummary(w io.Writer, instance string, s *Summary) error {
	_, err := fmt.Fprintf(w, "%s   %f   %f   %f\n", instance, s.Best, s.Mean, s.Worst)
	return err
}

// AppendSummary appends a summary line to the given file, creating it
// if needed. Benchmark drivers call this once per instance so a whole
// suite accumulates into one results file.
func AppendSummary(path, instance string, s *Summary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	if err := WriteSummary(f, instance, s); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
