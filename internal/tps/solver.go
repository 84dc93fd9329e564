// Package tps implements a three-phase population search for the
// maximally diverse grouping problem: light perturbation, cohesion-
// guided crossover and destroy-and-repair perturbation, each followed
// by a two-neighborhood local search, under a wall-clock budget with a
// population that shrinks linearly over the run.
package tps

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

// Solver owns the scratch state for optimizing partitions of one
// instance. It is not safe for concurrent use; run independent Solver
// instances for parallel runs.
type Solver struct {
	inst   *mdgp.Instance
	params Params
	rng    *rand.Rand

	d       [][]float64 // dense copy of the dissimilarity matrix
	catalog []candidate

	dm         *deltaMatrix // active local-search / perturbation matrix
	dmP1, dmP2 *deltaMatrix // crossover parent matrices
	gDiv1      []float64
	gDiv2      []float64
	avgCon     [][]float64 // heavy-perturbation connectivity table
}

// Result is the outcome of one Run.
type Result struct {
	Best        *mdgp.Partition
	Generations int
	Elapsed     time.Duration
}

// New validates params and prepares a solver for the given instance.
// The rng drives every stochastic choice; seed it for reproducibility.
func New(inst *mdgp.Instance, params Params, rng *rand.Rand) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	d := make([][]float64, inst.N)
	for i := range d {
		d[i] = make([]float64, inst.N)
		inst.DissimRow(d[i], i)
	}

	avgCon := make([][]float64, inst.K)
	for g := range avgCon {
		avgCon[g] = make([]float64, inst.K)
	}

	return &Solver{
		inst:    inst,
		params:  params,
		rng:     rng,
		d:       d,
		catalog: buildCatalog(inst.N, inst.K),
		dm:      newDeltaMatrix(inst.N, inst.K),
		dmP1:    newDeltaMatrix(inst.N, inst.K),
		dmP2:    newDeltaMatrix(inst.N, inst.K),
		gDiv1:   make([]float64, inst.K),
		gDiv2:   make([]float64, inst.K),
		avgCon:  avgCon,
	}, nil
}

// Run executes the search until the time budget elapses or ctx is
// cancelled, returning the best partition ever observed. The returned
// partition is always feasible and its cached cost verified.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	deadline := start.Add(s.params.TimeBudget)

	slog.Info("starting search",
		"n", s.inst.N, "k", s.inst.K,
		"pop_max", s.params.PopMax, "pop_min", s.params.PopMin,
		"budget", s.params.TimeBudget)

	// Initial population: independent randomized constructions, each
	// driven to a local optimum.
	pop := make([]*mdgp.Partition, s.params.PopMax)
	offs := make([]*mdgp.Partition, s.params.PopMax)
	best := mdgp.NewPartition(s.inst)
	best.Cost = -1
	for i := range pop {
		pop[i] = mdgp.NewRandomPartition(s.inst, s.rng)
		s.localSearch(pop[i])
		offs[i] = pop[i].Clone()
		if i == 0 || pop[i].Cost > best.Cost {
			best.CopyFrom(pop[i])
		}
	}

	popSize := s.params.PopMax
	theta := s.params.ThetaMax
	generations := 0

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		intensity := int(theta * float64(s.inst.N) / float64(s.inst.K))

		// Snapshot the population as offspring working copies.
		for i := 0; i < popSize; i++ {
			offs[i].CopyFrom(pop[i])
		}

		// Phase 1: light perturbation + local search.
		for i := 0; i < popSize; i++ {
			s.strongPerturb(pop[i], intensity)
			s.localSearch(pop[i])
			if pop[i].Cost > best.Cost {
				best.CopyFrom(pop[i])
			}
		}

		// Phase 2: crossover with a random distinct partner, local
		// search, then the fitness/diversity acceptance rule.
		if popSize > 1 {
			for i := 0; i < popSize; i++ {
				partner := i
				for partner == i {
					partner = s.rng.Intn(popSize)
				}
				s.crossover(pop[i], pop[partner], offs[i])
				s.localSearch(offs[i])
			}
			for i := 0; i < popSize; i++ {
				if offs[i].Cost >= pop[i].Cost || s.acceptScore(offs[i], pop[i]) > 1 {
					pop[i].CopyFrom(offs[i])
				}
				if pop[i].Cost > best.Cost {
					best.CopyFrom(pop[i])
				}
			}
		}

		// Phase 3: destroy-and-repair + local search.
		for i := 0; i < popSize; i++ {
			s.directPerturb(pop[i], s.params.LMax)
			s.localSearch(pop[i])
			if pop[i].Cost > best.Cost {
				best.CopyFrom(pop[i])
			}
		}

		// Phase 4: keep the strongest individuals; shrink the
		// population and the perturbation intensity linearly with the
		// elapsed fraction of the budget.
		sort.Slice(pop[:popSize], func(a, b int) bool { return pop[a].Cost > pop[b].Cost })
		frac := float64(time.Since(start)) / float64(s.params.TimeBudget)
		if frac > 1 {
			frac = 1
		}
		next := s.params.PopMax - int(float64(s.params.PopMax-s.params.PopMin)*frac)
		if next < s.params.PopMin {
			next = s.params.PopMin
		}
		if next < popSize {
			popSize = next
		}
		theta = s.params.ThetaMax - (s.params.ThetaMax-s.params.ThetaMin)*frac

		generations++
		slog.Debug("generation complete",
			"generation", generations,
			"best_cost", best.Cost,
			"pop_size", popSize,
			"theta", theta)
	}

	if err := best.Verify(); err != nil {
		return nil, fmt.Errorf("best partition failed verification: %w", err)
	}

	elapsed := time.Since(start)
	slog.Info("search complete",
		"generations", generations,
		"best_cost", best.Cost,
		"elapsed", elapsed)

	return &Result{
		Best:        best,
		Generations: generations,
		Elapsed:     elapsed,
	}, nil
}
