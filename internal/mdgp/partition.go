package mdgp

import (
	"fmt"
	"math/rand"
)

// Partition is a mutable assignment of elements to groups together
// with cached group sizes and the cached total in-group dissimilarity.
// All three are updated together by the solver's move operations; the
// cached cost always matches RecomputeCost after a completed operation.
type Partition struct {
	Assign []int   // Assign[i] = group of element i, in [0,K)
	Sizes  []int   // Sizes[g] = number of elements in group g
	Cost   float64 // cached sum of in-group pairwise dissimilarities

	inst *Instance
}

// NewPartition allocates an empty partition shell for inst. The
// assignment is not initialized; use NewRandomPartition or CopyFrom.
func NewPartition(inst *Instance) *Partition {
	return &Partition{
		Assign: make([]int, inst.N),
		Sizes:  make([]int, inst.K),
		inst:   inst,
	}
}

// NewRandomPartition builds a feasible random assignment: first every
// group is filled up to its lower bound with uniformly drawn unassigned
// elements, then the remaining elements are scattered into groups that
// still have spare capacity. The cached cost is computed afterwards.
func NewRandomPartition(inst *Instance, rng *rand.Rand) *Partition {
	p := NewPartition(inst)

	order := rng.Perm(inst.N)
	next := 0

	// Lower bounds first so no group can end up starved.
	for g := 0; g < inst.K; g++ {
		for p.Sizes[g] < inst.LB[g] {
			e := order[next]
			next++
			p.Assign[e] = g
			p.Sizes[g]++
		}
	}
	// Scatter the rest anywhere with room.
	for next < inst.N {
		g := rng.Intn(inst.K)
		if p.Sizes[g] >= inst.UB[g] {
			continue
		}
		e := order[next]
		next++
		p.Assign[e] = g
		p.Sizes[g]++
	}

	p.Cost = p.RecomputeCost()
	return p
}

// Instance returns the problem instance this partition belongs to.
func (p *Partition) Instance() *Instance { return p.inst }

// Clone returns a deep copy sharing the same instance.
func (p *Partition) Clone() *Partition {
	return &Partition{
		Assign: append([]int(nil), p.Assign...),
		Sizes:  append([]int(nil), p.Sizes...),
		Cost:   p.Cost,
		inst:   p.inst,
	}
}

// CopyFrom overwrites p with the contents of src. Both must belong to
// the same instance.
func (p *Partition) CopyFrom(src *Partition) {
	copy(p.Assign, src.Assign)
	copy(p.Sizes, src.Sizes)
	p.Cost = src.Cost
}

// RecomputeCost sums D[i][j] over all in-group pairs from scratch. The
// solver keeps the cached Cost consistent incrementally; this is the
// ground truth used for verification.
func (p *Partition) RecomputeCost() float64 {
	var sum float64
	for i := 0; i < p.inst.N; i++ {
		for j := i + 1; j < p.inst.N; j++ {
			if p.Assign[i] == p.Assign[j] {
				sum += p.inst.Dissim(i, j)
			}
		}
	}
	return sum
}

// Feasible reports whether every group size lies within its bounds.
func (p *Partition) Feasible() bool {
	for g := 0; g < p.inst.K; g++ {
		if p.Sizes[g] < p.inst.LB[g] || p.Sizes[g] > p.inst.UB[g] {
			return false
		}
	}
	return true
}

// Verify recomputes sizes and cost from the assignment, refreshes the
// caches, and returns an error if any group violates its bounds or an
// assignment is out of range.
func (p *Partition) Verify() error {
	for g := range p.Sizes {
		p.Sizes[g] = 0
	}
	for i, g := range p.Assign {
		if g < 0 || g >= p.inst.K {
			return fmt.Errorf("element %d assigned to invalid group %d", i, g)
		}
		p.Sizes[g]++
	}
	p.Cost = p.RecomputeCost()
	if !p.Feasible() {
		return fmt.Errorf("partition violates group size bounds")
	}
	return nil
}
