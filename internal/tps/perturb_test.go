package tps

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

func TestStrongPerturbKeepsInvariants(t *testing.T) {
	inst := randomInstance(t, 12, 3, 43)

	for seed := int64(0); seed < 10; seed++ {
		s := newTestSolver(t, inst, seed)
		p := mdgp.NewRandomPartition(inst, rand.New(rand.NewSource(seed)))

		s.strongPerturb(p, 8)

		require.True(t, p.Feasible(), "seed %d: perturbation broke feasibility", seed)
		total := 0
		for _, sz := range p.Sizes {
			total += sz
		}
		assert.Equal(t, inst.N, total, "seed %d: sizes out of sync", seed)
		assert.InDelta(t, p.RecomputeCost(), p.Cost, 1e-9, "seed %d: cached cost stale", seed)
	}
}

func TestStrongPerturbZeroIntensity(t *testing.T) {
	inst := clusteredInstance(t)
	s := newTestSolver(t, inst, 47)
	p := mdgp.NewRandomPartition(inst, rand.New(rand.NewSource(47)))
	before := p.Clone()

	s.strongPerturb(p, 0)

	assert.Equal(t, before.Assign, p.Assign)
	assert.Equal(t, before.Cost, p.Cost)
}

func TestDirectPerturbZeroRoundsIsIdentity(t *testing.T) {
	inst := clusteredInstance(t)
	s := newTestSolver(t, inst, 53)
	p := mdgp.NewRandomPartition(inst, rand.New(rand.NewSource(53)))
	s.localSearch(p) // already-optimal input must come back unchanged
	before := p.Clone()

	s.directPerturb(p, 0)

	assert.Equal(t, before.Assign, p.Assign)
	assert.Equal(t, before.Sizes, p.Sizes)
	assert.Equal(t, before.Cost, p.Cost)
}

func TestDirectPerturbKeepsInvariants(t *testing.T) {
	inst := randomInstance(t, 12, 3, 59)

	for seed := int64(0); seed < 10; seed++ {
		s := newTestSolver(t, inst, seed)
		p := mdgp.NewRandomPartition(inst, rand.New(rand.NewSource(seed)))

		s.directPerturb(p, 3)

		require.True(t, p.Feasible(), "seed %d: heavy perturbation broke feasibility", seed)
		total := 0
		for _, sz := range p.Sizes {
			total += sz
		}
		assert.Equal(t, inst.N, total, "seed %d: sizes out of sync", seed)
		assert.InDelta(t, p.RecomputeCost(), p.Cost, 1e-6, "seed %d: cached cost stale", seed)
	}
}

func TestDirectPerturbTightBounds(t *testing.T) {
	// Every group pinned to exactly N/K members: each removal forces a
	// lower-bound refill, exercising the deficit path.
	inst, err := mdgp.NewUniformInstance(9, 3, 3, 3)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(61))
	for i := 0; i < 9; i++ {
		for j := i + 1; j < 9; j++ {
			inst.SetDissim(i, j, rng.Float64())
		}
	}

	s := newTestSolver(t, inst, 61)
	p := mdgp.NewRandomPartition(inst, rand.New(rand.NewSource(61)))

	s.directPerturb(p, 5)

	require.True(t, p.Feasible())
	assert.InDelta(t, p.RecomputeCost(), p.Cost, 1e-6)
}
