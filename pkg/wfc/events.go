package wfc

// EventKind discriminates the union of progress events the stream can
// produce. Only Snapshot and Result are mandatory (the initial
// post-propagation snapshot and the terminal value); Decision events are
// advisory. This engine emits one for every successful placement and one
// each time a search frame is exhausted and its cell reverted; there is no
// option to change that granularity.
type EventKind int

const (
	// KindSnapshot carries a materialized per-cell possibility set: a
	// row-major slice of width*height tile-id sets.
	KindSnapshot EventKind = iota
	// KindDecision carries a single cell's assignment or reversion.
	KindDecision
	// KindResult is always the last event: the solved grid or no-solution.
	KindResult
	// KindError is always the only event, reporting a compile-time user
	// error discovered on the first pull.
	KindError
)

// Event is one item of the progress stream a solve emits.
type Event struct {
	Kind EventKind

	// Populated when Kind == KindSnapshot: row-major, width*height entries,
	// each the set of tile ids still possible in that cell.
	Snapshot [][]string

	// Populated when Kind == KindDecision.
	X, Y int
	// TileID is nil when the cell was reverted during backtracking,
	// otherwise the assigned tile id.
	TileID *string

	// Populated when Kind == KindResult.
	Result Result

	// Populated when Kind == KindError.
	Err error
}

// Result is the stream's terminal value: either the solved grid (row-major
// tile ids) or a clean no-solution outcome. It is never itself an error:
// infeasibility is a clean end-of-stream, not an error.
type Result struct {
	Solved bool
	// Tiles is row-major, width*height entries, populated iff Solved.
	Tiles []string
}

func snapshotEvent(grid *Grid, table *TileTable) Event {
	snap := make([][]string, len(grid.cells))
	for i, c := range grid.cells {
		ids := make([]string, 0, c.Count())
		c.Each(func(tile int) { ids = append(ids, table.IDOf(tile)) })
		snap[i] = ids
	}
	return Event{Kind: KindSnapshot, Snapshot: snap}
}

func decisionEvent(x, y int, tileID *string) Event {
	return Event{Kind: KindDecision, X: x, Y: y, TileID: tileID}
}

func resultEvent(r Result) Event {
	return Event{Kind: KindResult, Result: r}
}

func errorEvent(err error) Event {
	return Event{Kind: KindError, Err: err}
}

func decodeGrid(grid *Grid, table *TileTable) Result {
	tiles := make([]string, len(grid.cells))
	for i, c := range grid.cells {
		tiles[i] = table.IDOf(c.SingletonIndex())
	}
	return Result{Solved: true, Tiles: tiles}
}
