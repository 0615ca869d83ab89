package wfc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func checkerboardConstraints() Constraints {
	return Constraints{
		{ID: "A", North: []string{"B"}, East: []string{"B"}, South: []string{"B"}, West: []string{"B"}},
		{ID: "B", North: []string{"A"}, East: []string{"A"}, South: []string{"A"}, West: []string{"A"}},
	}
}

func drain(t *testing.T, stream *Stream) []Event {
	t.Helper()
	ctx := context.Background()
	var events []Event
	for {
		ev, ok := stream.Next(ctx)
		if !ok {
			break
		}
		events = append(events, ev)
		if ev.Kind == KindResult || ev.Kind == KindError {
			break
		}
	}
	return events
}

// S1 — degenerate 1x1 checkerboard.
func TestSolveS1Degenerate1x1(t *testing.T) {
	stream := Solve(context.Background(), checkerboardConstraints(), 1, 1, 42)
	events := drain(t, stream)
	require.NotEmpty(t, events)

	snap := events[0]
	require.Equal(t, KindSnapshot, snap.Kind)
	require.Equal(t, [][]string{{"A", "B"}}, snap.Snapshot)

	last := events[len(events)-1]
	require.Equal(t, KindResult, last.Kind)
	require.True(t, last.Result.Solved)
	require.Equal(t, []string{"A"}, last.Result.Tiles)
}

// S2 — 1x2 checkerboard; reference shuffle with seed=42 yields [A,B].
func TestSolveS2OneByTwo(t *testing.T) {
	stream := Solve(context.Background(), checkerboardConstraints(), 1, 2, 42)
	events := drain(t, stream)

	snap := events[0]
	require.Equal(t, [][]string{{"A", "B"}, {"A", "B"}}, snap.Snapshot)

	last := events[len(events)-1]
	require.Equal(t, KindResult, last.Kind)
	require.True(t, last.Result.Solved)
	require.Equal(t, []string{"A", "B"}, last.Result.Tiles)
}

// S3 — 2x2 checkerboard; reference shuffle yields [A,B,B,A].
func TestSolveS3TwoByTwo(t *testing.T) {
	stream := Solve(context.Background(), checkerboardConstraints(), 2, 2, 42)
	events := drain(t, stream)

	last := events[len(events)-1]
	require.Equal(t, KindResult, last.Kind)
	require.True(t, last.Result.Solved)
	require.Equal(t, []string{"A", "B", "B", "A"}, last.Result.Tiles)
}

// S4 — single self-referential tile fills every cell.
func TestSolveS4SingleSelfReferentialTile(t *testing.T) {
	cs := Constraints{
		{ID: "X", North: []string{"X"}, East: []string{"X"}, South: []string{"X"}, West: []string{"X"}},
	}
	stream := Solve(context.Background(), cs, 3, 3, 0)
	events := drain(t, stream)

	last := events[len(events)-1]
	require.True(t, last.Result.Solved)
	want := []string{"X", "X", "X", "X", "X", "X", "X", "X", "X"}
	require.Equal(t, want, last.Result.Tiles)
}

// S5 — non-commutative rejection.
func TestSolveS5NonCommutativeRejection(t *testing.T) {
	cs := Constraints{
		{ID: "A", East: []string{"B"}},
		{ID: "B"},
	}
	stream := Solve(context.Background(), cs, 2, 2, 0)
	events := drain(t, stream)
	require.Len(t, events, 1)
	require.Equal(t, KindError, events[0].Kind)

	var nc *NonCommutative
	require.ErrorAs(t, events[0].Err, &nc)
	require.Equal(t, "A", nc.A)
	require.Equal(t, "B", nc.B)
	require.Equal(t, East, nc.DirectionAB)
}

// S6 — unknown reference rejection.
func TestSolveS6UnknownReferenceRejection(t *testing.T) {
	cs := Constraints{
		{ID: "A", North: []string{"C"}},
	}
	stream := Solve(context.Background(), cs, 1, 1, 0)
	events := drain(t, stream)
	require.Len(t, events, 1)
	require.Equal(t, KindError, events[0].Kind)

	var ut *UnknownTile
	require.ErrorAs(t, events[0].Err, &ut)
	require.Equal(t, "A", ut.Referrer)
	require.Equal(t, "C", ut.Target)
	require.Equal(t, North, ut.Direction)
}

// Boundary: width or height of 0 yields an immediate empty solution.
func TestSolveZeroDimensionIsEmptySolution(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {0, 0}} {
		stream := Solve(context.Background(), checkerboardConstraints(), dims[0], dims[1], 1)
		events := drain(t, stream)
		require.Len(t, events, 1)
		require.Equal(t, KindResult, events[0].Kind)
		require.True(t, events[0].Result.Solved)
		require.Empty(t, events[0].Result.Tiles)
	}
}

// Determinism: two independent solves with equal inputs emit equal terminal
// values.
func TestSolveIsDeterministic(t *testing.T) {
	run := func() Result {
		stream := Solve(context.Background(), checkerboardConstraints(), 4, 3, 99)
		events := drain(t, stream)
		return events[len(events)-1].Result
	}
	a := run()
	b := run()
	require.Equal(t, a, b)
}

// Validity: every decided neighbor pair in a solved grid is mutually
// compatible under the compiled table.
func TestSolveSolutionIsLocallyConsistent(t *testing.T) {
	cs := checkerboardConstraints()
	stream := Solve(context.Background(), cs, 3, 3, 7)
	events := drain(t, stream)
	last := events[len(events)-1]
	require.True(t, last.Result.Solved)

	table, err := Compile(cs)
	require.NoError(t, err)

	width := 3
	at := func(x, y int) string { return last.Result.Tiles[y*width+x] }
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			ti, _ := table.IndexOf(at(x, y))
			for _, d := range directions {
				nx, ny := x+d.DX(), y+d.DY()
				if nx < 0 || nx >= 3 || ny < 0 || ny >= 3 {
					continue
				}
				ui, _ := table.IndexOf(at(nx, ny))
				require.True(t, table.Allow(ti, d).Get(ui))
			}
		}
	}
}

func TestSolveCancellationStopsEarly(t *testing.T) {
	ctx := context.Background()
	stream := Solve(ctx, checkerboardConstraints(), 5, 5, 1)

	ev, ok := stream.Next(ctx)
	require.True(t, ok)
	require.Equal(t, KindSnapshot, ev.Kind)

	stream.Cancel()

	// Draining after cancellation must terminate quickly rather than
	// running the solve to completion.
	for i := 0; i < 10_000; i++ {
		if _, ok := stream.Next(ctx); !ok {
			return
		}
	}
	t.Fatal("stream did not close after Cancel")
}
