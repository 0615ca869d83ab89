package wfc

import "fmt"

// UnknownTile reports that a tile referenced an adjacency partner that was
// never declared as a key of the input constraint map. This is a user error
// surfaced at compile time, never a panic.
type UnknownTile struct {
	Referrer  string
	Target    string
	Direction Direction
}

func (e *UnknownTile) Error() string {
	return fmt.Sprintf("wfc: tile %q lists unknown neighbor %q on side %s", e.Referrer, e.Target, e.Direction)
}

// NonCommutative reports that tile A allows tile B on some side, but B does
// not allow A on the opposite side. Adjacency must be symmetric; this is a
// user error, not a runtime failure.
type NonCommutative struct {
	A, B        string
	DirectionAB Direction
}

func (e *NonCommutative) Error() string {
	return fmt.Sprintf("wfc: adjacency %q -> %q on side %s is not reciprocated by %q -> %q on side %s",
		e.A, e.B, e.DirectionAB, e.B, e.A, e.DirectionAB.Opposite())
}

// WidthMismatch is a programmer error: two BitDomains of different widths
// were compared or combined. It indicates a bug in the caller, not a
// malformed input, and is never produced by compile-time validation.
type WidthMismatch struct {
	Want, Got int
}

func (e *WidthMismatch) Error() string {
	return fmt.Sprintf("wfc: bit domain width mismatch: want %d, got %d", e.Want, e.Got)
}

// IndexOutOfBounds is a programmer error: a bit index outside [0, width)
// was requested of a BitDomain.
type IndexOutOfBounds struct {
	Index, Width int
}

func (e *IndexOutOfBounds) Error() string {
	return fmt.Sprintf("wfc: index %d out of bounds for width %d", e.Index, e.Width)
}

// unsatisfiable is the internal signal exchanged between the Propagator and
// Search when a cell's domain has been driven empty. It is never exposed
// outside this package; Search converts it into backtracking, and the
// engine never surfaces it directly as an error to a caller.
type unsatisfiable struct {
	x, y int
}

func (e *unsatisfiable) Error() string {
	return fmt.Sprintf("wfc: cell (%d,%d) has no remaining possibilities", e.x, e.y)
}
