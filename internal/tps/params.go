package tps

import (
	"fmt"
	"time"
)

// Params controls the three-phase search: population schedule,
// perturbation schedule and time budget.
type Params struct {
	// PopMax is the initial population size; PopMin is the size the
	// population shrinks toward over the run.
	PopMax int
	PopMin int

	// ThetaMax/ThetaMin bound the light-perturbation intensity
	// multiplier; the per-generation intensity is floor(theta*N/K),
	// with theta decreasing linearly over the time budget.
	ThetaMax float64
	ThetaMin float64

	// LMax is the number of destroy-and-repair rounds per heavy
	// perturbation call.
	LMax int

	// TimeBudget is the wall-clock limit for one Run.
	TimeBudget time.Duration

	// DiversityWeight scales the structural-difference term in the
	// crossover acceptance score. Heuristic tuning constant.
	DiversityWeight float64

	// Eps is the tolerance for gain comparisons against zero,
	// preventing cycling on floating-point noise.
	Eps float64
}

// DefaultParams returns the reference parameter schedule, which
// depends on the instance size: small instances use a wider theta
// range and keep a larger minimum population.
func DefaultParams(n int) Params {
	p := Params{
		PopMax:          15,
		LMax:            3,
		TimeBudget:      10 * time.Second,
		DiversityWeight: 0.05,
		Eps:             1e-4,
	}
	if n <= 400 {
		p.ThetaMax = 1.2
		p.ThetaMin = 0.1
		p.PopMin = 2
	} else {
		p.ThetaMax = 2.0
		p.ThetaMin = 1.0
		p.PopMin = 1
	}
	return p
}

// Validate checks the parameters for internal consistency.
func (p Params) Validate() error {
	if p.PopMax < 1 || p.PopMin < 1 || p.PopMin > p.PopMax {
		return fmt.Errorf("invalid population bounds: max=%d, min=%d", p.PopMax, p.PopMin)
	}
	if p.ThetaMax < p.ThetaMin || p.ThetaMin < 0 {
		return fmt.Errorf("invalid theta bounds: max=%g, min=%g", p.ThetaMax, p.ThetaMin)
	}
	if p.LMax < 0 {
		return fmt.Errorf("invalid LMax: %d", p.LMax)
	}
	if p.TimeBudget <= 0 {
		return fmt.Errorf("invalid time budget: %v", p.TimeBudget)
	}
	if p.Eps <= 0 {
		return fmt.Errorf("invalid epsilon: %g", p.Eps)
	}
	return nil
}
