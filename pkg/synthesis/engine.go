// Package synthesis sums weighted, phase-shifted secondary-source
// contributions into a monochromatic sound field: the discretized
// single-layer potential P(x) = sum_i D(x0_i) * G(x - x0_i) * w_i.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/sfstoolbox/sfs-go/pkg/geometry"
	"github.com/sfstoolbox/sfs-go/pkg/greens"
	"github.com/sfstoolbox/sfs-go/pkg/grid"
)

// Integration errors.
var (
	ErrCountMismatch    = errors.New("secondary source and driving signal counts disagree")
	ErrInvalidParameter = errors.New("invalid synthesis parameter")
)

// ProgressFunc receives advisory progress notifications, once per processed
// secondary source. It must not assume any particular goroutine and must not
// influence the computation.
type ProgressFunc func(done, total int)

// Engine integrates secondary-source contributions into sound fields. An
// Engine is stateless between calls; concurrent Synthesize calls with
// different inputs are independent.
type Engine struct {
	logger       *zap.Logger
	speedOfSound float64
	convention   greens.Convention
	workers      int
	progress     ProgressFunc
}

// EngineConfig contains configuration for the synthesis engine.
type EngineConfig struct {
	// SpeedOfSound in m/s. Zero selects greens.DefaultSpeedOfSound.
	SpeedOfSound float64
	// Convention is the sign of the temporal exponential.
	Convention greens.Convention
	// Workers is the number of goroutines evaluating secondary sources.
	// Values below 2 select the sequential path.
	Workers int
	// Progress, when set, is called once per processed secondary source.
	Progress ProgressFunc
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// NewEngine creates a new synthesis engine.
func NewEngine(config *EngineConfig) *Engine {
	if config == nil {
		config = &EngineConfig{}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:       logger,
		speedOfSound: config.SpeedOfSound,
		convention:   config.Convention,
		workers:      config.Workers,
		progress:     config.Progress,
	}
}

// Synthesize evaluates the field synthesized by the secondary-source array
// over the grid. driving holds one complex excitation per secondary source,
// order-aligned with sources. All validation happens before any numeric
// work; a validation failure returns no partial result.
//
// Contributions are accumulated in ascending source order. With more than
// one worker, contiguous source chunks are reduced to partial fields and
// merged in ascending chunk order, so results are deterministic for a fixed
// worker count (and equal to the sequential result up to floating-point
// rounding).
func (e *Engine) Synthesize(ctx context.Context, g *grid.Grid, sources []geometry.SecondarySource,
	driving []complex128, model greens.Model, frequency float64) (*Result, error) {

	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidParameter)
	}
	if len(sources) != len(driving) {
		return nil, fmt.Errorf("%w: %d sources, %d driving signals",
			ErrCountMismatch, len(sources), len(driving))
	}
	params := greens.Params{
		Frequency:    frequency,
		SpeedOfSound: e.speedOfSound,
		Convention:   e.convention,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for i, src := range sources {
		if math.IsNaN(src.Weight) || math.IsInf(src.Weight, 0) {
			return nil, fmt.Errorf("%w: source %d has malformed weight %v",
				ErrInvalidParameter, i, src.Weight)
		}
		if !src.Position.IsFinite() {
			return nil, fmt.Errorf("%w: source %d has non-finite position",
				ErrInvalidParameter, i)
		}
	}

	e.logger.Debug("starting field synthesis",
		zap.Int("sources", len(sources)),
		zap.Int("grid_points", g.Len()),
		zap.Stringer("model", model),
		zap.Float64("frequency_hz", frequency),
		zap.Int("workers", e.workers),
	)

	var pressure []complex128
	var err error
	if e.workers > 1 && len(sources) > 1 {
		pressure, err = e.integrateParallel(ctx, g, sources, driving, model, params)
	} else {
		pressure, err = e.integrate(ctx, g, sources, driving, model, params, 0, len(sources), e.progress)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Pressure: pressure, Grid: g}, nil
}

// integrate accumulates the sources in [lo, hi) into a fresh field, checking
// for cancellation once per source.
func (e *Engine) integrate(ctx context.Context, g *grid.Grid, sources []geometry.SecondarySource,
	driving []complex128, model greens.Model, params greens.Params,
	lo, hi int, progress ProgressFunc) ([]complex128, error) {

	field := make([]complex128, g.Len())
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		contribution, err := greens.Evaluate(g, sources[i].Position, sources[i].Normal, model, params)
		if err != nil {
			return nil, fmt.Errorf("secondary source %d: %w", i, err)
		}
		scale := driving[i] * complex(sources[i].Weight, 0)
		for j, gj := range contribution {
			field[j] += scale * gj
		}
		if progress != nil {
			progress(i+1-lo, hi-lo)
		}
	}
	return field, nil
}

// integrateParallel splits the sources into contiguous chunks, one per
// worker, reduces each chunk to a partial field, and merges the partials in
// ascending chunk order.
func (e *Engine) integrateParallel(ctx context.Context, g *grid.Grid,
	sources []geometry.SecondarySource, driving []complex128,
	model greens.Model, params greens.Params) ([]complex128, error) {

	workers := e.workers
	if workers > len(sources) {
		workers = len(sources)
	}

	var mu sync.Mutex
	done := 0
	progress := func(int, int) {
		if e.progress == nil {
			return
		}
		mu.Lock()
		done++
		d := done
		mu.Unlock()
		e.progress(d, len(sources))
	}

	partials := make([][]complex128, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	chunk := (len(sources) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(sources))
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			partials[w], errs[w] = e.integrate(ctx, g, sources, driving, model, params, lo, hi, progress)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	field := make([]complex128, g.Len())
	for _, partial := range partials {
		if partial == nil {
			continue
		}
		for j, p := range partial {
			field[j] += p
		}
	}
	return field, nil
}
