package tps

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

func TestCrossoverChildIsFeasible(t *testing.T) {
	inst := randomInstance(t, 12, 3, 67)

	for seed := int64(0); seed < 15; seed++ {
		s := newTestSolver(t, inst, seed)
		rng := rand.New(rand.NewSource(seed))
		p1 := mdgp.NewRandomPartition(inst, rng)
		p2 := mdgp.NewRandomPartition(inst, rng)
		child := mdgp.NewPartition(inst)

		s.crossover(p1, p2, child)

		require.NoError(t, child.Verify(), "seed %d: child failed verification", seed)
	}
}

func TestCrossoverTightBounds(t *testing.T) {
	// Fixed group sizes force the trim-and-redistribute paths.
	inst, err := mdgp.NewUniformInstance(8, 2, 4, 4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(71))
	for i := 0; i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			inst.SetDissim(i, j, rng.Float64())
		}
	}

	for seed := int64(0); seed < 15; seed++ {
		s := newTestSolver(t, inst, seed)
		r := rand.New(rand.NewSource(seed))
		p1 := mdgp.NewRandomPartition(inst, r)
		p2 := mdgp.NewRandomPartition(inst, r)
		child := mdgp.NewPartition(inst)

		s.crossover(p1, p2, child)

		require.NoError(t, child.Verify(), "seed %d", seed)
		assert.Equal(t, []int{4, 4}, child.Sizes, "seed %d", seed)
	}
}

func TestAcceptScoreIdenticalPartitions(t *testing.T) {
	inst := clusteredInstance(t)
	s := newTestSolver(t, inst, 73)
	p := mdgp.NewRandomPartition(inst, rand.New(rand.NewSource(73)))

	// Zero disagreement: the score reduces to the cost ratio.
	assert.InDelta(t, 1.0, s.acceptScore(p, p), 1e-9)
}

func TestAcceptScoreCountsDisagreements(t *testing.T) {
	inst, err := mdgp.NewUniformInstance(4, 2, 2, 2)
	require.NoError(t, err)
	inst.SetDissim(0, 1, 1)
	inst.SetDissim(2, 3, 1)
	inst.SetDissim(0, 2, 1)
	inst.SetDissim(1, 3, 1)

	s := newTestSolver(t, inst, 79)

	parent := mdgp.NewPartition(inst)
	copy(parent.Assign, []int{0, 0, 1, 1})
	require.NoError(t, parent.Verify())

	child := mdgp.NewPartition(inst)
	copy(child.Assign, []int{0, 1, 0, 1})
	require.NoError(t, child.Verify())

	// Pairs (0,1), (2,3), (0,2), (1,3) all flip co-grouping status
	// between the two partitions: 4 disagreements out of 16 = n*n.
	want := child.Cost/parent.Cost + 0.05*(4.0/16.0)*2.0
	assert.InDelta(t, want, s.acceptScore(child, parent), 1e-9)
}
