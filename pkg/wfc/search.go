package wfc

// emitFunc sends an event to the consumer and reports whether the consumer
// is still pulling; once it returns false the search must stop doing any
// further work, so dropping the event stream terminates the solve.
type emitFunc func(Event) bool

// frame is one level of the explicit search stack: the grid state to
// restore to before each sibling trial, the cell being branched on, and
// the shuffled trial order for its candidates. An explicit stack avoids
// recursion depth tied to grid size.
type frame struct {
	snap      *Grid
	x, y      int
	choices   []int
	idx       int
	depthSeed int32
}

// search runs the depth-first backtracking solve against an already
// fully-propagated grid, emitting progress events as it goes.
// It returns the terminal Result; cancellation (emit returning false) stops
// the walk early and returns a negative Result without visiting further
// branches.
func search(table *TileTable, cache *SupportCache, grid *Grid, selector CellSelector, seed int32, emit emitFunc) Result {
	if grid.AllDecided() {
		res := decodeGrid(grid, table)
		emit(resultEvent(res))
		return res
	}

	x0, y0, ok := selector.Select(grid)
	if !ok {
		res := Result{Solved: false}
		emit(resultEvent(res))
		return res
	}

	stack := []frame{newFrame(grid, table, x0, y0, seed)}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.idx >= len(f.choices) {
			grid.Restore(f.snap)
			if !emit(decisionEvent(f.x, f.y, nil)) {
				return Result{Solved: false}
			}
			stack = stack[:len(stack)-1]
			continue
		}

		tile := f.choices[f.idx]
		f.idx++

		grid.Restore(f.snap)
		placed := NewBitDomain(table.N())
		placed.Set(tile, true)
		grid.SetDomain(f.x, f.y, placed)

		if err := propagate(table, cache, grid, f.x, f.y); err != nil {
			continue
		}

		tileID := table.IDOf(tile)
		if !emit(decisionEvent(f.x, f.y, &tileID)) {
			return Result{Solved: false}
		}

		if grid.AllDecided() {
			res := decodeGrid(grid, table)
			emit(resultEvent(res))
			return res
		}

		nx, ny, ok := selector.Select(grid)
		if !ok {
			continue
		}
		stack = append(stack, newFrame(grid, table, nx, ny, f.depthSeed+1))
	}

	res := Result{Solved: false}
	emit(resultEvent(res))
	return res
}

// newFrame snapshots the grid, materializes the chosen cell's remaining
// candidates, and shuffles them into trial order with the deterministic
// shuffle keyed on (seed, x, y).
func newFrame(grid *Grid, table *TileTable, x, y int, seed int32) frame {
	choices := grid.At(x, y).ToSlice()
	deterministicShuffle(choices, seed, int32(x), int32(y))
	return frame{
		snap:      grid.Clone(),
		x:         x,
		y:         y,
		choices:   choices,
		idx:       0,
		depthSeed: seed,
	}
}
