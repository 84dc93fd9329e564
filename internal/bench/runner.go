// Package bench runs repeated independent searches on one instance and
// aggregates best/average/worst statistics across the repetitions.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/HanneyAI/anticlust/internal/mdgp"
	"github.com/HanneyAI/anticlust/internal/tps"
)

// Summary holds the outcome of a repetition batch.
type Summary struct {
	Costs   []float64 // final best cost of each repetition
	Best    float64
	Worst   float64
	Mean    float64
	BestRun *mdgp.Partition // best partition across all repetitions
	Elapsed time.Duration
}

// Run executes `times` independent searches. Repetition r uses seed+r,
// so batches are reproducible while repetitions stay independent. Each
// repetition's result is verified before it counts.
func Run(ctx context.Context, inst *mdgp.Instance, params tps.Params, times int, seed int64) (*Summary, error) {
	if times < 1 {
		return nil, fmt.Errorf("repetitions must be positive, got %d", times)
	}

	start := time.Now()
	sum := &Summary{Costs: make([]float64, 0, times)}

	for r := 0; r < times; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rng := rand.New(rand.NewSource(seed + int64(r)))
		solver, err := tps.New(inst, params, rng)
		if err != nil {
			return nil, err
		}

		res, err := solver.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", r, err)
		}

		slog.Info("repetition complete", "repetition", r, "cost", res.Best.Cost)
		sum.Costs = append(sum.Costs, res.Best.Cost)
		if sum.BestRun == nil || res.Best.Cost > sum.BestRun.Cost {
			sum.BestRun = res.Best
		}
	}

	sum.Best = floats.Max(sum.Costs)
	sum.Worst = floats.Min(sum.Costs)
	sum.Mean = stat.Mean(sum.Costs, nil)
	sum.Elapsed = time.Since(start)
	return sum, nil
}
