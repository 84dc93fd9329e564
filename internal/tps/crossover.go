package tps

import (
	"math"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

// crossover recombines two parents into child, transplanting whole
// groups greedily by cohesion. K times, a coin flip picks the donor
// parent, whose most cohesive remaining group is copied verbatim into
// a child group that can hold it (or trimmed randomly into the group
// with the smallest capacity shortfall). Elements left over are then
// distributed to satisfy the lower bounds and finally the upper
// bounds. The child always comes out feasible.
func (s *Solver) crossover(p1, p2 *mdgp.Partition, child *mdgp.Partition) {
	inst := s.inst
	n, k := inst.N, inst.K

	// Per-parent cohesion trackers. gDiv[g] sums the connectivity of
	// every member to its group; assigning an element to the child
	// discounts it from both parents so later donor picks reflect only
	// elements still up for grabs.
	s.dmP1.build(s.d, p1.Assign)
	s.dmP2.build(s.d, p2.Assign)
	for g := 0; g < k; g++ {
		s.gDiv1[g] = 0
		s.gDiv2[g] = 0
	}
	for i := 0; i < n; i++ {
		s.gDiv1[p1.Assign[i]] += s.dmP1.at(i, p1.Assign[i])
		s.gDiv2[p2.Assign[i]] += s.dmP2.at(i, p2.Assign[i])
	}

	assigned := make([]bool, n) // element already placed in the child
	open := make([]bool, k)     // child group still accepting a donor group
	childSize := make([]int, k)
	for g := range open {
		open[g] = true
	}

	members := make([]int, 0, n)
	fits := make([]int, 0, k)

	for it := 0; it < k; it++ {
		donor := p1.Assign
		gDiv := s.gDiv1
		if s.rng.Float64() >= 0.5 {
			donor = p2.Assign
			gDiv = s.gDiv2
		}

		// Most cohesive remaining donor group and its free members.
		gBest := 0
		for g := 1; g < k; g++ {
			if gDiv[g] > gDiv[gBest] {
				gBest = g
			}
		}
		members = members[:0]
		for i := 0; i < n; i++ {
			if !assigned[i] && donor[i] == gBest {
				members = append(members, i)
			}
		}

		// Prefer an open child group that can take the set verbatim.
		fits = fits[:0]
		for g := 0; g < k; g++ {
			if open[g] && inst.UB[g] >= len(members) {
				fits = append(fits, g)
			}
		}

		var target int
		chosen := members
		if len(fits) > 0 {
			target = fits[s.rng.Intn(len(fits))]
		} else {
			// No group fits: take the one with the smallest capacity
			// shortfall and keep a random subset of that capacity.
			shortfall := math.MaxInt
			for g := 0; g < k; g++ {
				if open[g] && len(members)-inst.UB[g] < shortfall {
					shortfall = len(members) - inst.UB[g]
					target = g
				}
			}
			s.rng.Shuffle(len(members), func(i, j int) {
				members[i], members[j] = members[j], members[i]
			})
			chosen = members[:inst.UB[target]]
		}

		for _, e := range chosen {
			child.Assign[e] = target
			assigned[e] = true
			s.gDiv1[p1.Assign[e]] -= s.dmP1.at(e, p1.Assign[e])
			s.gDiv2[p2.Assign[e]] -= s.dmP2.at(e, p2.Assign[e])
		}
		open[target] = false
		childSize[target] = len(chosen)
	}

	s.repairChild(child, assigned, childSize)

	copy(child.Sizes, childSize)
	child.Cost = child.RecomputeCost()
}

// repairChild distributes the free pool left after the K donor picks:
// releases elements from over-filled groups if the lower bounds cannot
// be covered, tops up every group still below its lower bound, then
// fills remaining capacity until all N elements are assigned.
func (s *Solver) repairChild(child *mdgp.Partition, assigned []bool, childSize []int) {
	inst := s.inst
	n, k := inst.N, inst.K

	sumLB := 0
	covered := 0    // elements usable toward satisfying the lower bounds
	underTotal := 0 // elements already sitting in under-LB groups
	lbShort := make([]bool, k)
	aboveLB := make([]bool, k)
	for g := 0; g < k; g++ {
		sumLB += inst.LB[g]
		if childSize[g] < inst.LB[g] {
			lbShort[g] = true
			covered += childSize[g]
			underTotal += childSize[g]
		} else {
			covered += inst.LB[g]
		}
		if childSize[g] > inst.LB[g] {
			aboveLB[g] = true
		}
	}
	for i := 0; i < n; i++ {
		if !assigned[i] {
			covered++
		}
	}

	// Not enough free elements to lift every group to its LB: release
	// random members of groups holding more than their LB.
	scratch := make([]int, 0, n)
	for covered < sumLB {
		g := s.pickCyclic(k, func(g int) bool { return aboveLB[g] })
		scratch = scratch[:0]
		for i := 0; i < n; i++ {
			if assigned[i] && child.Assign[i] == g {
				scratch = append(scratch, i)
			}
		}
		e := scratch[s.rng.Intn(len(scratch))]
		assigned[e] = false
		childSize[g]--
		if childSize[g] == inst.LB[g] {
			aboveLB[g] = false
		}
		covered++
	}

	// Top up the starved groups from the free pool.
	needed := 0
	for g := 0; g < k; g++ {
		if lbShort[g] {
			needed += inst.LB[g]
		}
	}
	for underTotal < needed {
		g := s.pickCyclic(k, func(g int) bool { return lbShort[g] })
		e := s.randomFree(assigned)
		child.Assign[e] = g
		assigned[e] = true
		childSize[g]++
		if childSize[g] == inst.LB[g] {
			lbShort[g] = false
		}
		underTotal++
	}

	// Fill whatever is left into groups with spare capacity.
	total := 0
	ubSpare := make([]bool, k)
	for g := 0; g < k; g++ {
		total += childSize[g]
		ubSpare[g] = childSize[g] < inst.UB[g]
	}
	for total < n {
		g := s.pickCyclic(k, func(g int) bool { return ubSpare[g] })
		e := s.randomFree(assigned)
		child.Assign[e] = g
		assigned[e] = true
		childSize[g]++
		if childSize[g] == inst.UB[g] {
			ubSpare[g] = false
		}
		total++
	}
}

// randomFree draws a uniform element from the free pool.
func (s *Solver) randomFree(assigned []bool) int {
	free := make([]int, 0, len(assigned))
	for i, a := range assigned {
		if !a {
			free = append(free, i)
		}
	}
	return free[s.rng.Intn(len(free))]
}

// acceptScore rates an offspring that did not outperform its parent:
// the cost ratio plus a weighted structural-difference term. A score
// above 1 lets an equal-or-worse but sufficiently different child
// replace its parent, preserving population diversity.
func (s *Solver) acceptScore(child, parent *mdgp.Partition) float64 {
	n := s.inst.N
	disagree := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sameChild := child.Assign[i] == child.Assign[j]
			sameParent := parent.Assign[i] == parent.Assign[j]
			if sameChild != sameParent {
				disagree++
			}
		}
	}
	ratio := child.Cost / parent.Cost
	return ratio + s.params.DiversityWeight*float64(disagree)/float64(n*n)*float64(s.inst.K)
}
