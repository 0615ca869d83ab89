package wfc

import (
	"context"

	"go.uber.org/zap"
)

// EngineOption configures a Solve call. The zero value of every option
// reproduces the engine's default behavior. WithLogger and
// WithCacheCapacity never change the solved outcome for a given seed;
// WithCellSelector can, since a different selector branches on different
// cells.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger        *zap.Logger
	cacheCapacity int
	selector      CellSelector
}

// WithLogger attaches a zap logger the engine uses for Debug/Info
// diagnostics (compile outcome, infeasible initial propagation, and the
// solve outcome with cache hit/miss/peak counts). Backtracks are not
// counted or logged.
// A nil logger (the default) disables logging entirely; the engine never
// requires a logger to function.
func WithLogger(l *zap.Logger) EngineOption {
	return func(c *engineConfig) { c.logger = l }
}

// WithCacheCapacity bounds the SupportCache to an LRU of the given size.
// capacity <= 0 (the default) leaves the cache unbounded.
func WithCacheCapacity(capacity int) EngineOption {
	return func(c *engineConfig) { c.cacheCapacity = capacity }
}

// WithCellSelector overrides the cell-selection strategy used by Search.
// The default, unconfigured behavior is LowestEntropySelector.
func WithCellSelector(s CellSelector) EngineOption {
	return func(c *engineConfig) { c.selector = s }
}

// Stream is the lazy, pull-driven progress sequence a solve emits. It is
// produced by Solve and consumed by repeatedly calling Next until it
// returns ok == false, at which point Result (or Err, for a compile-time
// user error) holds the terminal outcome.
type Stream struct {
	events chan Event
	cancel context.CancelFunc

	result Result
	err    error
}

// Next blocks until the next event is ready or ctx is done. ok is false
// once the stream is exhausted (after the terminal KindResult or
// KindError event) or the context was cancelled first.
func (s *Stream) Next(ctx context.Context) (Event, bool) {
	select {
	case ev, open := <-s.events:
		if !open {
			return Event{}, false
		}
		switch ev.Kind {
		case KindResult:
			s.result = ev.Result
		case KindError:
			s.err = ev.Err
		}
		return ev, true
	case <-ctx.Done():
		return Event{}, false
	}
}

// Cancel stops the solve early. Nothing outlives a cancelled stream: the
// search goroutine observes cancellation at its next yield point and
// exits without further work.
func (s *Stream) Cancel() { s.cancel() }

// Result returns the terminal value once the stream has been fully drained
// (or the zero Result if drained early via cancellation or a compile
// error).
func (s *Stream) Result() Result { return s.result }

// Err returns the compile-time user error, if KindError was the event
// produced by this solve.
func (s *Stream) Err() error { return s.err }

// Solve is the package's single entry point: it validates and compiles
// constraints, runs initial propagation, and performs backtracking search,
// returning a lazy stream of progress events whose terminal value is the
// solved grid or a no-solution outcome.
//
// width == 0 or height == 0 yields an immediate empty-solution result: one
// KindResult event with Solved == true and an empty Tiles slice.
func Solve(ctx context.Context, constraints Constraints, width, height int, seed int32, opts ...EngineOption) *Stream {
	cfg := engineConfig{selector: NewLowestEntropySelector()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.selector == nil {
		cfg.selector = NewLowestEntropySelector()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	runCtx, cancel := context.WithCancel(ctx)
	stream := &Stream{
		events: make(chan Event),
		cancel: cancel,
	}

	go runSolve(runCtx, constraints, width, height, seed, cfg, stream.events)

	return stream
}

func runSolve(ctx context.Context, constraints Constraints, width, height int, seed int32, cfg engineConfig, events chan<- Event) {
	defer close(events)

	emit := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if width == 0 || height == 0 {
		emit(resultEvent(Result{Solved: true, Tiles: []string{}}))
		return
	}

	table, err := Compile(constraints)
	if err != nil {
		cfg.logger.Debug("wfc: compile rejected constraints", zap.Error(err))
		emit(errorEvent(err))
		return
	}
	cfg.logger.Info("wfc: compiled tile table", zap.Int("tiles", table.N()))

	grid := NewGrid(width, height, table.N())
	cache := NewSupportCache(table, cfg.cacheCapacity)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := propagate(table, cache, grid, x, y); err != nil {
				cfg.logger.Info("wfc: infeasible at initial propagation", zap.Int("x", x), zap.Int("y", y))
				emit(resultEvent(Result{Solved: false}))
				return
			}
		}
	}

	if !emit(snapshotEvent(grid, table)) {
		return
	}

	res := search(table, cache, grid, cfg.selector, seed, emit)

	stats := cache.Stats()
	cfg.logger.Info("wfc: solve finished",
		zap.Bool("solved", res.Solved),
		zap.Int64("cache_hits", stats.Hits),
		zap.Int64("cache_misses", stats.Misses),
		zap.Int("cache_peak", stats.PeakSize),
	)
}
