package tps

import (
	"math/rand"
	"testing"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

// clusteredInstance has two tight clusters (0-2 and 3-5) with large
// cross-cluster dissimilarities, 2 groups bounded [2,4].
func clusteredInstance(t *testing.T) *mdgp.Instance {
	t.Helper()
	inst, err := mdgp.NewInstance(6, 2, []int{2, 2}, []int{4, 4})
	if err != nil {
		t.Fatalf("NewInstance failed: %v", err)
	}
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			d := 10.0
			if (i < 3) == (j < 3) {
				d = 0.1
			}
			inst.SetDissim(i, j, d)
		}
	}
	return inst
}

// randomInstance has uniform random dissimilarities in [0,1) and
// uniform group bounds wide enough for plenty of slack.
func randomInstance(t *testing.T, n, k int, seed int64) *mdgp.Instance {
	t.Helper()
	lb := n/k - 1
	if lb < 0 {
		lb = 0
	}
	inst, err := mdgp.NewUniformInstance(n, k, lb, n/k+2)
	if err != nil {
		t.Fatalf("NewUniformInstance failed: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			inst.SetDissim(i, j, rng.Float64())
		}
	}
	return inst
}

func newTestSolver(t *testing.T, inst *mdgp.Instance, seed int64) *Solver {
	t.Helper()
	s, err := New(inst, DefaultParams(inst.N), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

// bruteForceDM recomputes DM[i][g] by definition.
func bruteForceDM(inst *mdgp.Instance, assign []int) [][]float64 {
	dm := make([][]float64, inst.N)
	for i := range dm {
		dm[i] = make([]float64, inst.K)
		for j := 0; j < inst.N; j++ {
			if j != i {
				dm[i][assign[j]] += inst.Dissim(i, j)
			}
		}
	}
	return dm
}

// bruteForceBest enumerates every feasible assignment of a small
// instance and returns the maximum cost.
func bruteForceBest(inst *mdgp.Instance) float64 {
	n, k := inst.N, inst.K
	assign := make([]int, n)
	sizes := make([]int, k)
	best := -1.0

	var rec func(i int)
	rec = func(i int) {
		if i == n {
			for g := 0; g < k; g++ {
				if sizes[g] < inst.LB[g] || sizes[g] > inst.UB[g] {
					return
				}
			}
			var cost float64
			for a := 0; a < n; a++ {
				for b := a + 1; b < n; b++ {
					if assign[a] == assign[b] {
						cost += inst.Dissim(a, b)
					}
				}
			}
			if cost > best {
				best = cost
			}
			return
		}
		for g := 0; g < k; g++ {
			if sizes[g] >= inst.UB[g] {
				continue
			}
			assign[i] = g
			sizes[g]++
			rec(i + 1)
			sizes[g]--
		}
	}
	rec(0)
	return best
}
