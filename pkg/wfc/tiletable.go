package wfc

// TileConstraint is one input tile: its opaque id and the four ordered
// lists of ids permitted as its neighbor on each side, in the fixed
// direction order North, East, South, West.
type TileConstraint struct {
	ID    string
	North []string
	East  []string
	South []string
	West  []string
}

func (c *TileConstraint) side(d Direction) []string {
	switch d {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

// Constraints is the compile input: tile constraints in the order their
// indices will be assigned. Callers that load constraints from an
// unordered source (e.g. a map) must fix an order themselves; compile
// assigns index i to Constraints[i], so repeating the same order on two
// compiles always yields the same TileTable.
type Constraints []TileConstraint

// TileTable is the immutable, post-compilation constraint table: an
// integer index per tile id, and for every (index, direction) the set of
// neighbor indices permitted on that side.
type TileTable struct {
	n       int
	idToIdx map[string]int
	idxToID []string
	allow   [][4]*BitDomain // allow[tileIndex][direction]
}

// N returns the tile count (and the bit-width of every BitDomain produced
// against this table).
func (t *TileTable) N() int { return t.n }

// IndexOf returns the compiled index for a tile id.
func (t *TileTable) IndexOf(id string) (int, bool) {
	i, ok := t.idToIdx[id]
	return i, ok
}

// IDOf returns the input tile id for a compiled index.
func (t *TileTable) IDOf(index int) string {
	return t.idxToID[index]
}

// Allow returns the BitDomain of tile indices permitted as the neighbor of
// tile index t on side d. The returned domain is shared and must not be
// mutated by the caller; Clone it first.
func (tt *TileTable) Allow(tileIndex int, d Direction) *BitDomain {
	return tt.allow[tileIndex][d]
}

// Compile validates and compiles a Constraints input into a TileTable.
//
// Validation runs in input order and stops at the first failure: for
// every tile t and direction d, every listed neighbor id u must be a
// known tile (UnknownTile), and u's adjacency list on the opposite
// direction must list t back (NonCommutative). Both are reported as
// structured errors, not panics; they are user errors, not bugs.
func Compile(cs Constraints) (*TileTable, error) {
	n := len(cs)
	idToIdx := make(map[string]int, n)
	idxToID := make([]string, n)
	for i, c := range cs {
		idToIdx[c.ID] = i
		idxToID[i] = c.ID
	}

	// Pre-validation pass, in input order, first failure wins.
	for _, c := range cs {
		for _, d := range directions {
			for _, u := range c.side(d) {
				if _, ok := idToIdx[u]; !ok {
					return nil, &UnknownTile{Referrer: c.ID, Target: u, Direction: d}
				}
				uc := cs[idToIdx[u]]
				if !contains(uc.side(d.Opposite()), c.ID) {
					return nil, &NonCommutative{A: c.ID, B: u, DirectionAB: d}
				}
			}
		}
	}

	allow := make([][4]*BitDomain, n)
	for i, c := range cs {
		for _, d := range directions {
			dom := NewBitDomain(n)
			for _, u := range c.side(d) {
				dom.Set(idToIdx[u], true)
			}
			allow[i][d] = dom
		}
	}

	return &TileTable{
		n:       n,
		idToIdx: idToIdx,
		idxToID: idxToID,
		allow:   allow,
	}, nil
}

func contains(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}
