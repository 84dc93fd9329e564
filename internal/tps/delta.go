package tps

// deltaMatrix caches, for every element i and group g, the sum of
// dissimilarities between i and the current members of g. It makes
// single-move gains O(1) to evaluate and O(N) to commit.
//
// The matrix is owned by whichever routine is actively optimizing a
// partition: it must be rebuilt with build whenever a partition is
// loaded fresh, and is then kept consistent through applyMove for the
// duration of that routine.
type deltaMatrix struct {
	n, k int
	vals []float64 // row-major n*k
}

func newDeltaMatrix(n, k int) *deltaMatrix {
	return &deltaMatrix{n: n, k: k, vals: make([]float64, n*k)}
}

func (dm *deltaMatrix) at(i, g int) float64 {
	return dm.vals[i*dm.k+g]
}

// build recomputes the matrix from scratch for the given assignment
// and returns the partition cost. Each in-group pair is accumulated
// from both endpoints, so the cost is half the diagonal sum.
func (dm *deltaMatrix) build(d [][]float64, assign []int) float64 {
	for x := range dm.vals {
		dm.vals[x] = 0
	}
	for i := 0; i < dm.n; i++ {
		row := dm.vals[i*dm.k : (i+1)*dm.k]
		di := d[i]
		for j := 0; j < dm.n; j++ {
			row[assign[j]] += di[j]
		}
	}
	var cost float64
	for i := 0; i < dm.n; i++ {
		cost += dm.at(i, assign[i])
	}
	return cost / 2
}

// add adjusts a single cell. Used by the heavy perturbation while it
// discounts and re-adds removed elements.
func (dm *deltaMatrix) add(i, g int, v float64) {
	dm.vals[i*dm.k+g] += v
}

// applyMove updates the matrix for element i leaving group from and
// joining group to. Row i itself is unaffected: D[i][i] is zero, so
// i's own connectivity to every group is unchanged by its move.
func (dm *deltaMatrix) applyMove(d [][]float64, i, from, to int) {
	di := d[i]
	for j := 0; j < dm.n; j++ {
		if j == i {
			continue
		}
		dm.vals[j*dm.k+from] -= di[j]
		dm.vals[j*dm.k+to] += di[j]
	}
}
