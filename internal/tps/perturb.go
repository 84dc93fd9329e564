package tps

import (
	"math"

	"github.com/HanneyAI/anticlust/internal/mdgp"
)

// strongPerturb applies `intensity` random elementary moves drawn
// uniformly from the neighbor catalog. Relocations are only taken when
// feasible under the size bounds; cross-group exchanges are taken
// unconditionally. Gains are irrelevant here: this is a non-greedy
// diversification step. No delta matrix is maintained; the cached cost
// is refreshed from scratch before returning.
func (s *Solver) strongPerturb(p *mdgp.Partition, intensity int) {
	inst := s.inst
	if intensity <= 0 || inst.K < 2 {
		return
	}

	accepted := 0
	for accepted < intensity {
		c := s.catalog[s.rng.Intn(len(s.catalog))]
		switch c.kind {
		case relocateMove:
			cur := p.Assign[c.v]
			if c.g == cur || p.Sizes[cur] <= inst.LB[cur] || p.Sizes[c.g] >= inst.UB[c.g] {
				continue
			}
			p.Assign[c.v] = c.g
			p.Sizes[cur]--
			p.Sizes[c.g]++
			accepted++
		case exchangeMove:
			if p.Assign[c.x] == p.Assign[c.y] {
				continue
			}
			p.Assign[c.x], p.Assign[c.y] = p.Assign[c.y], p.Assign[c.x]
			accepted++
		}
	}

	p.Cost = p.RecomputeCost()
}

// directPerturb runs `rounds` destroy-and-repair rounds. Each round
// pulls the least-cohesive member out of every group, then reinserts
// the removed elements greedily by average connectivity: groups that
// fell below their lower bound are refilled first, the rest go to any
// group with spare capacity. Less disruptive than strongPerturb and
// cost-aware, targeting the weakest member of each group specifically.
//
// With rounds == 0 the partition is returned untouched.
func (s *Solver) directPerturb(p *mdgp.Partition, rounds int) {
	inst := s.inst
	if rounds <= 0 {
		return
	}
	n, k := inst.N, inst.K
	dm := s.dm

	removed := make([]int, k)  // removed[g] = element pulled from group g, -1 if none
	placed := make([]bool, k)  // removed[g] already reinserted
	underLB := make([]bool, k) // group g fell below its lower bound

	for round := 0; round < rounds; round++ {
		dm.build(s.d, p.Assign)

		// Destroy: drop the member with the lowest connectivity to its
		// own group, one per group.
		totalRemoved := 0
		deficit := 0
		for g := 0; g < k; g++ {
			underLB[g] = false
			placed[g] = true
			removed[g] = -1
			minV := math.Inf(1)
			for i := 0; i < n; i++ {
				if p.Assign[i] == g && dm.at(i, g) < minV {
					minV = dm.at(i, g)
					removed[g] = i
				}
			}
			if removed[g] < 0 {
				continue // empty group, nothing to remove
			}
			placed[g] = false
			totalRemoved++
			p.Sizes[g]--
			if p.Sizes[g] < inst.LB[g] {
				underLB[g] = true
				deficit++
			}
		}

		// Discount the edges between removed elements, then derive the
		// average connectivity of each removed element to each group,
		// normalized by the group's post-removal size.
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				s.avgCon[i][j] = 0
			}
		}
		for i := 0; i < k; i++ {
			if removed[i] < 0 {
				continue
			}
			for j := 0; j < k; j++ {
				if removed[j] < 0 {
					continue
				}
				dm.add(removed[i], j, -s.d[removed[i]][removed[j]])
				s.avgCon[i][j] = dm.at(removed[i], j)
				if p.Sizes[j] > 0 {
					s.avgCon[i][j] /= float64(p.Sizes[j])
				}
			}
		}

		// Repair, lower bounds first: each starved group takes the
		// removed element most connected to it.
		for done := 0; done < deficit; done++ {
			g := s.pickCyclic(k, func(g int) bool { return underLB[g] })
			origin := -1
			best := math.Inf(-1)
			for o := 0; o < k; o++ {
				if placed[o] {
					continue
				}
				if s.avgCon[o][g] > best {
					best = s.avgCon[o][g]
					origin = o
				}
			}
			s.reinsert(p, removed, placed, origin, g)
			underLB[g] = false
		}

		// Then scatter the remaining removed elements into groups with
		// spare capacity, again by maximum average connectivity.
		for done := 0; done < totalRemoved-deficit; done++ {
			origin := s.pickCyclic(k, func(o int) bool { return !placed[o] })
			target := -1
			best := math.Inf(-1)
			for g := 0; g < k; g++ {
				if p.Sizes[g] >= inst.UB[g] {
					continue
				}
				if s.avgCon[origin][g] > best {
					best = s.avgCon[origin][g]
					target = g
				}
			}
			s.reinsert(p, removed, placed, origin, target)
		}
	}

	p.Cost = dm.build(s.d, p.Assign)
}

// reinsert commits removed[origin] into target: size, delta matrix and
// connectivity table updates for the still-removed elements, then the
// assignment itself.
func (s *Solver) reinsert(p *mdgp.Partition, removed []int, placed []bool, origin, target int) {
	k := s.inst.K
	e := removed[origin]
	p.Sizes[target]++
	for o := 0; o < k; o++ {
		if removed[o] < 0 || placed[o] || o == origin {
			continue
		}
		dm := s.dm
		dm.add(removed[o], target, s.d[removed[o]][e])
		s.avgCon[o][target] = dm.at(removed[o], target) / float64(p.Sizes[target])
	}
	for g := 0; g < k; g++ {
		s.avgCon[origin][g] = 0
	}
	p.Assign[e] = target
	placed[origin] = true
}

// pickCyclic draws a uniform starting index and walks forward to the
// first index satisfying ok. At least one index must satisfy it.
func (s *Solver) pickCyclic(k int, ok func(int) bool) int {
	i := s.rng.Intn(k)
	for !ok(i) {
		i = (i + 1) % k
	}
	return i
}
