package tps

// moveKind tags an entry of the neighbor catalog.
type moveKind uint8

const (
	relocateMove moveKind = iota // move element v to group g
	exchangeMove                 // swap the groups of elements x and y
)

// candidate is one elementary move: either a single-element relocation
// (v, g) or a pairwise exchange (x, y).
type candidate struct {
	kind moveKind
	v, g int
	x, y int
}

// buildCatalog enumerates all N*K relocation candidates and N*(N-1)/2
// exchange candidates once, so the light perturbation can sample
// uniformly without re-deriving the combinatorics per draw.
func buildCatalog(n, k int) []candidate {
	catalog := make([]candidate, 0, n*k+n*(n-1)/2)
	for v := 0; v < n; v++ {
		for g := 0; g < k; g++ {
			catalog = append(catalog, candidate{kind: relocateMove, v: v, g: g})
		}
	}
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			catalog = append(catalog, candidate{kind: exchangeMove, x: x, y: y})
		}
	}
	return catalog
}
