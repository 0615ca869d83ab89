package wfc

import "sort"

// cellCoord names a grid cell for selection purposes.
type cellCoord struct{ X, Y int }

// CellSelector picks the next undecided cell for Search to branch on.
// Different selectors are interchangeable behind one interface, and the
// engine is free to swap in a different one without touching Search itself.
type CellSelector interface {
	// Select returns the next cell to branch on and reports whether any
	// undecided cell remains. Only cells with cardinality > 1 are eligible.
	Select(grid *Grid) (x, y int, ok bool)
	Name() string
}

// LowestEntropySelector is the default: among all cells with cardinality
// > 1, pick the smallest cardinality, breaking ties by row-major position.
// Changing the default selector changes the solved trace for a given seed,
// so callers that depend on a specific trace must not swap it out.
type LowestEntropySelector struct{}

// NewLowestEntropySelector constructs the default selector.
func NewLowestEntropySelector() *LowestEntropySelector { return &LowestEntropySelector{} }

func (s *LowestEntropySelector) Select(grid *Grid) (int, int, bool) {
	type candidate struct {
		cellCoord
		count int
	}
	var candidates []candidate
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			c := grid.At(x, y).Count()
			if c > 1 {
				candidates = append(candidates, candidate{cellCoord{x, y}, c})
			}
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].count < candidates[j].count
	})
	best := candidates[0]
	return best.X, best.Y, true
}

func (s *LowestEntropySelector) Name() string { return "lowest-entropy" }

// LexicographicSelector selects the first undecided cell in row-major order,
// ignoring cardinality. Offered as an alternative a caller may opt into via
// EngineOptions; never the default.
type LexicographicSelector struct{}

// NewLexicographicSelector constructs the lexicographic selector.
func NewLexicographicSelector() *LexicographicSelector { return &LexicographicSelector{} }

func (s *LexicographicSelector) Select(grid *Grid) (int, int, bool) {
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			if grid.At(x, y).Count() > 1 {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func (s *LexicographicSelector) Name() string { return "lexicographic" }
