package wfc

// Grid is a width*height row-major array of BitDomains, all of the same
// width (the compiled TileTable's N). It is mutated only by the Propagator
// and the Search (trial placement and restore); nothing else writes to it.
type Grid struct {
	width, height int
	cells         []*BitDomain
}

// NewGrid builds a grid of the given dimensions with every cell set to the
// full domain over [0, n).
func NewGrid(width, height, n int) *Grid {
	g := &Grid{width: width, height: height, cells: make([]*BitDomain, width*height)}
	for i := range g.cells {
		g.cells[i] = FullBitDomain(n)
	}
	return g
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

// InBounds reports whether (x, y) is a valid cell coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the live domain at (x, y). Mutating it mutates the grid.
func (g *Grid) At(x, y int) *BitDomain {
	return g.cells[g.index(x, y)]
}

// SetDomain replaces the domain at (x, y).
func (g *Grid) SetDomain(x, y int, d *BitDomain) {
	g.cells[g.index(x, y)] = d
}

// Clone deep-copies every cell's domain. Used once per search trial to take
// a restore-on-failure snapshot.
func (g *Grid) Clone() *Grid {
	cells := make([]*BitDomain, len(g.cells))
	for i, c := range g.cells {
		cells[i] = c.Clone()
	}
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Restore resets every cell domain to a fresh copy of snap's, so a caller
// holding a *Grid reference sees the rollback without needing a new
// pointer. It clones rather than aliases snap's domains: snap is reused
// as the baseline across every sibling trial at a search frame, and later
// in-place mutation of the live grid (Propagator's IntersectInto) must
// never reach back into the domains snap itself holds.
func (g *Grid) Restore(snap *Grid) {
	for i, c := range snap.cells {
		g.cells[i] = c.Clone()
	}
}

// AllDecided reports whether every cell has cardinality 1.
func (g *Grid) AllDecided() bool {
	for _, c := range g.cells {
		if c.Count() != 1 {
			return false
		}
	}
	return true
}
