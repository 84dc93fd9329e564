// Package mdgp models instances and solutions of the maximally diverse
// grouping problem: partition N elements into K groups with per-group
// size bounds, maximizing the sum of pairwise dissimilarities inside
// each group.
package mdgp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Instance is the immutable problem data: element count, group count,
// per-group size bounds and the symmetric dissimilarity matrix.
type Instance struct {
	N  int   // number of elements
	K  int   // number of groups
	LB []int // lower size bound per group
	UB []int // upper size bound per group

	d *mat.SymDense // N x N dissimilarities, zero diagonal
}

// BoundsError reports size bounds that no assignment can satisfy.
type BoundsError struct {
	N, SumLB, SumUB int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("infeasible bounds: sum(LB)=%d, sum(UB)=%d, N=%d", e.SumLB, e.SumUB, e.N)
}

// NewInstance validates the bounds and allocates the dissimilarity
// matrix (initially all zero). Returns a BoundsError if no feasible
// assignment of N elements to the K groups exists.
func NewInstance(n, k int, lb, ub []int) (*Instance, error) {
	if n <= 0 || k <= 0 {
		return nil, fmt.Errorf("invalid dimensions: n=%d, k=%d", n, k)
	}
	if len(lb) != k || len(ub) != k {
		return nil, fmt.Errorf("bounds length mismatch: got %d/%d, want %d", len(lb), len(ub), k)
	}
	sumLB, sumUB := 0, 0
	for g := 0; g < k; g++ {
		if lb[g] < 0 || ub[g] < lb[g] {
			return nil, fmt.Errorf("invalid bounds for group %d: [%d,%d]", g, lb[g], ub[g])
		}
		sumLB += lb[g]
		sumUB += ub[g]
	}
	if sumLB > n || sumUB < n {
		return nil, &BoundsError{N: n, SumLB: sumLB, SumUB: sumUB}
	}

	inst := &Instance{
		N:  n,
		K:  k,
		LB: append([]int(nil), lb...),
		UB: append([]int(nil), ub...),
		d:  mat.NewSymDense(n, nil),
	}
	return inst, nil
}

// NewUniformInstance creates an instance where every group shares the
// same [lb, ub] size range.
func NewUniformInstance(n, k, lb, ub int) (*Instance, error) {
	lbs := make([]int, k)
	ubs := make([]int, k)
	for g := range lbs {
		lbs[g] = lb
		ubs[g] = ub
	}
	return NewInstance(n, k, lbs, ubs)
}

// SetDissim records the dissimilarity between two distinct elements.
// The matrix is symmetric; setting (i,j) also sets (j,i). Self-pairs
// are ignored, keeping the diagonal at zero.
func (inst *Instance) SetDissim(i, j int, d float64) {
	if i == j {
		return
	}
	inst.d.SetSym(i, j, d)
}

// Dissim returns the dissimilarity between elements i and j.
func (inst *Instance) Dissim(i, j int) float64 {
	return inst.d.At(i, j)
}

// DissimRow copies row i of the dissimilarity matrix into dst, which
// must have length N. Used by the solver to flatten the hot path.
func (inst *Instance) DissimRow(dst []float64, i int) {
	for j := 0; j < inst.N; j++ {
		dst[j] = inst.d.At(i, j)
	}
}

// TotalDissim returns the sum of D[i][j] over all unordered pairs, an
// upper bound on any partition cost.
func (inst *Instance) TotalDissim() float64 {
	var sum float64
	for i := 0; i < inst.N; i++ {
		for j := i + 1; j < inst.N; j++ {
			sum += inst.d.At(i, j)
		}
	}
	return sum
}
