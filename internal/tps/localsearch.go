package tps

import "github.com/HanneyAI/anticlust/internal/mdgp"

// localSearch drives p to a local optimum under two neighborhoods:
// single-element relocations and pairwise exchanges. Sweeps repeat
// until a full pass over both neighborhoods accepts no move. Moves are
// taken first-improvement, in index order, and committed immediately.
//
// The delta matrix is rebuilt from p on entry and kept consistent
// incrementally; p's assignment, sizes and cached cost are updated in
// place with every accepted move.
func (s *Solver) localSearch(p *mdgp.Partition) {
	inst := s.inst
	dm := s.dm
	p.Cost = dm.build(s.d, p.Assign)

	for {
		improved := false

		// Neighborhood A: relocate v to g, guarded by both bounds.
		for v := 0; v < inst.N; v++ {
			for g := 0; g < inst.K; g++ {
				cur := p.Assign[v]
				if g == cur || p.Sizes[cur] <= inst.LB[cur] || p.Sizes[g] >= inst.UB[g] {
					continue
				}
				gain := dm.at(v, g) - dm.at(v, cur)
				if gain > s.params.Eps {
					dm.applyMove(s.d, v, cur, g)
					p.Sizes[cur]--
					p.Sizes[g]++
					p.Assign[v] = g
					p.Cost += gain
					improved = true
				}
			}
		}

		// Neighborhood B: exchange x and y across groups. Sizes are
		// unchanged by an exchange, so no feasibility check applies.
		// The -2*D[x][y] term corrects the double count of the edge
		// between x and y in the two relocation gains.
		for x := 0; x < inst.N; x++ {
			for y := x + 1; y < inst.N; y++ {
				gx, gy := p.Assign[x], p.Assign[y]
				if gx == gy {
					continue
				}
				gain := (dm.at(x, gy) - dm.at(x, gx)) + (dm.at(y, gx) - dm.at(y, gy)) - 2*s.d[x][y]
				if gain > s.params.Eps {
					dm.applyMove(s.d, x, gx, gy)
					dm.applyMove(s.d, y, gy, gx)
					p.Assign[x], p.Assign[y] = gy, gx
					p.Cost += gain
					improved = true
				}
			}
		}

		if !improved {
			return
		}
	}
}
