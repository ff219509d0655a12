package colvar

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/curvelab/ssorder/geom"
	"github.com/curvelab/ssorder/motif"
	"github.com/curvelab/ssorder/rmsd"
	"github.com/curvelab/ssorder/switching"
)

// Metric selects how the structural distance of a window from the template
// is measured.
type Metric int

const (
	// MetricOptimal is the minimized RMS displacement after best-fit
	// superposition.
	MetricOptimal Metric = iota

	// MetricPairwise is the alignment-free distance-matrix RMSD.
	MetricPairwise
)

// String returns the configuration-file spelling of the metric.
func (m Metric) String() string {
	switch m {
	case MetricOptimal:
		return "optimal"
	case MetricPairwise:
		return "drmsd"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric converts a configuration-file spelling into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "optimal":
		return MetricOptimal, nil
	case "drmsd", "pairwise":
		return MetricPairwise, nil
	}
	return 0, fmt.Errorf("colvar: unknown metric %q (want optimal or drmsd)", s)
}

// OutputSpec configures one named output. Every output shares the same
// window evaluations; distances are computed once per metric per window no
// matter how many outputs consume them.
//
// The switching parameters apply to the sum reducer, which counts switched
// contributions. The min, max and mean reducers act on the raw distances.
type OutputSpec struct {
	Name    string
	Metric  Metric
	Switch  switching.Params
	Reducer Reducer
}

// Output is one evaluated scalar with its gradient over the full input
// coordinate array (zero outside the touched windows) and its box
// derivative.
type Output struct {
	Name   string
	Value  float64
	Grad   []geom.Coords
	Virial geom.Virial
}

// StrandsCutoff skips the full distance calculation for windows whose two
// designated atoms (indices within the window) are farther apart than Dist.
// Structures that spread out are nowhere near the template, so with the sum
// reducer their contribution is indistinguishable from zero.
type StrandsCutoff struct {
	A, B int
	Dist float64
}

// Engine evaluates a fixed set of outputs against a reference template.
// Construct with New; an Engine is safe for repeated Evaluate calls but not
// for concurrent ones (it keeps the bounded-staleness classification
// between calls).
type Engine struct {
	tmpl    *motif.Template
	scale   float64
	chains  []Chain
	windows [][]int
	maxAtom int

	specs []OutputSpec
	sw    []*switching.Func // per spec; nil for non-sum reducers

	optimal  *rmsd.Optimal
	pairwise *rmsd.Pairwise

	nopbc   bool
	workers int
	cutoff  *StrandsCutoff

	// Bounded-staleness window classification (see WithSkipUpdates).
	stride int
	tol    float64
	active []bool
	step   int

	log *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithScale sets the factor converting template coordinates into simulation
// units. The built-in motif tables are authored in angstroms, so the
// default of 0.1 yields nanometers.
func WithScale(scale float64) Option {
	return func(e *Engine) { e.scale = scale }
}

// WithoutPBC disables minimum-image reconstruction of windows. Use it when
// the caller guarantees chains are already whole.
func WithoutPBC() Option {
	return func(e *Engine) { e.nopbc = true }
}

// WithWorkers sets the number of goroutines evaluating windows. Zero or
// negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithStrandsCutoff enables the strands-cutoff skip. Only valid when every
// output uses the sum reducer.
func WithStrandsCutoff(c StrandsCutoff) Option {
	return func(e *Engine) { e.cutoff = &c }
}

// WithSkipUpdates enables the bounded-staleness optimization: windows whose
// largest switched contribution fell below tol at the last refresh step are
// skipped until the next refresh, every stride evaluations. A skipped
// window that drifts back toward the template is picked up, fully
// recomputed, at the next refresh; the classification is a performance
// trade-off, never an approximation of a refreshed window. Only valid when
// every output uses the sum reducer.
func WithSkipUpdates(stride int, tol float64) Option {
	return func(e *Engine) {
		e.stride = stride
		e.tol = tol
	}
}

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New validates the whole configuration and builds an Engine. Any
// inconsistency (chains shorter than the template, atom counts that split
// residues, bad switching or reducer parameters, skip options combined with
// non-sum reducers) is a fatal setup error: the engine refuses to exist
// rather than produce degenerate output.
func New(tmpl *motif.Template, chains []Chain, specs []OutputSpec, opts ...Option) (*Engine, error) {
	e := &Engine{
		tmpl:   tmpl,
		scale:  0.1,
		chains: chains,
		specs:  specs,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}

	windows, err := enumerateWindows(tmpl, chains)
	if err != nil {
		return nil, err
	}
	e.windows = windows
	for _, win := range windows {
		for _, a := range win {
			if a < 0 {
				return nil, fmt.Errorf("colvar: negative atom index %d in "+
					"backbone definition", a)
			}
			if a > e.maxAtom {
				e.maxAtom = a
			}
		}
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("colvar: at least one output must be configured")
	}
	e.sw = make([]*switching.Func, len(specs))
	seen := make(map[string]bool, len(specs))
	allSum := true
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("colvar: output %d has no name", i)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("colvar: duplicate output name %q", spec.Name)
		}
		seen[spec.Name] = true

		if err := spec.Reducer.validate(); err != nil {
			return nil, fmt.Errorf("output %q: %w", spec.Name, err)
		}
		if spec.Reducer.Kind != ReduceSum {
			allSum = false
		} else {
			sw, err := switching.New(spec.Switch)
			if err != nil {
				return nil, fmt.Errorf("output %q: %w", spec.Name, err)
			}
			e.sw[i] = sw
		}

		switch spec.Metric {
		case MetricOptimal:
			if e.optimal == nil {
				if e.optimal, err = rmsd.NewOptimal(tmpl.Coords, e.scale); err != nil {
					return nil, err
				}
			}
		case MetricPairwise:
			if e.pairwise == nil {
				if e.pairwise, err = rmsd.NewPairwise(tmpl.Coords, e.scale); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("output %q: unknown metric %d",
				spec.Name, int(spec.Metric))
		}
	}

	if e.cutoff != nil {
		if !allSum {
			return nil, fmt.Errorf("colvar: the strands cutoff changes " +
				"non-sum reducers; it is only valid when every output uses " +
				"the sum reducer")
		}
		if e.cutoff.Dist <= 0 {
			return nil, fmt.Errorf("colvar: strands cutoff distance must be "+
				"positive, got %g", e.cutoff.Dist)
		}
		n := tmpl.Size()
		if e.cutoff.A < 0 || e.cutoff.A >= n || e.cutoff.B < 0 || e.cutoff.B >= n {
			return nil, fmt.Errorf("colvar: strands cutoff atoms (%d, %d) out "+
				"of window range [0, %d)", e.cutoff.A, e.cutoff.B, n)
		}
	}
	if e.stride > 1 {
		if !allSum {
			return nil, fmt.Errorf("colvar: skipping stale windows changes " +
				"non-sum reducers; it is only valid when every output uses " +
				"the sum reducer")
		}
		if e.tol <= 0 {
			return nil, fmt.Errorf("colvar: skip tolerance must be positive, "+
				"got %g", e.tol)
		}
		e.active = make([]bool, len(windows))
		for i := range e.active {
			e.active[i] = true
		}
	}

	e.log.Debug("engine configured",
		zap.String("motif", tmpl.Name),
		zap.Int("chains", len(chains)),
		zap.Int("windows", len(windows)),
		zap.Int("outputs", len(specs)),
		zap.Int("workers", e.workers),
	)
	return e, nil
}

// Windows returns the number of windows the engine evaluates per call.
func (e *Engine) Windows() int {
	return len(e.windows)
}

// windowEval is the result of evaluating one window: one distance result
// per metric actually configured, returned by value from the worker that
// computed it. Windows share nothing mutable.
type windowEval struct {
	optimal  rmsd.Result
	pairwise rmsd.Result
	skipped  bool
	err      error
}

// Evaluate computes every configured output for the given coordinates and
// box. The coordinate slice must cover every atom named in the chains. The
// outputs appear in the order their specs were given. A malformed
// coordinate set (too short, or with non-finite values in any touched
// window) aborts the whole evaluation; partial results are never returned.
func (e *Engine) Evaluate(coords []geom.Coords, box geom.Box) ([]Output, error) {
	if len(coords) <= e.maxAtom {
		return nil, fmt.Errorf("colvar: coordinate array has %d atoms but the "+
			"backbone definition references atom %d", len(coords), e.maxAtom)
	}

	refresh := e.active == nil || e.step%e.stride == 0
	e.step++

	evals := e.evalWindows(coords, box, refresh)
	degenerate := 0
	for i := range evals {
		if evals[i].err != nil {
			return nil, evals[i].err
		}
		if evals[i].optimal.Degenerate {
			degenerate++
		}
	}
	if degenerate > 0 {
		e.log.Warn("ambiguous optimal rotation; identity fallback used",
			zap.Int("windows", degenerate))
	}

	// Reduction barrier: every window is in, combine them. maxContrib
	// feeds the staleness classification on refresh steps.
	var maxContrib []float64
	if e.active != nil && refresh {
		maxContrib = make([]float64, len(e.windows))
	}

	outputs := make([]Output, len(e.specs))
	for si, spec := range e.specs {
		values := make([]float64, len(e.windows))
		gradScale := make([]float64, len(e.windows))
		for wi := range e.windows {
			ev := &evals[wi]
			if ev.skipped {
				continue
			}
			res := ev.result(spec.Metric)
			if e.sw[si] != nil {
				s, dsdr := e.sw[si].Eval(res.Dist)
				values[wi], gradScale[wi] = s, dsdr
				if maxContrib != nil && s > maxContrib[wi] {
					maxContrib[wi] = s
				}
			} else {
				values[wi], gradScale[wi] = res.Dist, 1
			}
		}

		value, weights := spec.Reducer.reduce(values)
		out := Output{
			Name:  spec.Name,
			Value: value,
			Grad:  make([]geom.Coords, len(coords)),
		}
		for wi, win := range e.windows {
			coeff := weights[wi] * gradScale[wi]
			if coeff == 0 || evals[wi].skipped {
				continue
			}
			res := evals[wi].result(spec.Metric)
			for k, atom := range win {
				out.Grad[atom] = out.Grad[atom].Add(res.Grad[k].Scale(coeff))
			}
			out.Virial.AddScaled(coeff, res.Virial)
		}
		outputs[si] = out
	}

	if maxContrib != nil {
		skipped := 0
		for wi := range e.active {
			e.active[wi] = maxContrib[wi] >= e.tol
			if !e.active[wi] {
				skipped++
			}
		}
		e.log.Debug("refreshed window classification",
			zap.Int("inactive", skipped))
	}
	return outputs, nil
}

func (ev *windowEval) result(m Metric) *rmsd.Result {
	if m == MetricPairwise {
		return &ev.pairwise
	}
	return &ev.optimal
}

// evalWindows runs the per-window phase on a worker pool. Windows only read
// shared state (coordinates, template, parameters) and each worker writes a
// disjoint slot of the result slice, so no synchronization beyond the final
// join is needed.
func (e *Engine) evalWindows(coords []geom.Coords, box geom.Box, refresh bool) []windowEval {
	evals := make([]windowEval, len(e.windows))
	jobs := make(chan int, e.workers*2)

	wg := &sync.WaitGroup{}
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var mem *rmsd.Memory
			if e.optimal != nil {
				mem = rmsd.NewMemory(e.tmpl.Size())
			}
			pos := make([]geom.Coords, e.tmpl.Size())
			for wi := range jobs {
				evals[wi] = e.evalWindow(mem, pos, coords, box, wi)
			}
		}()
	}
	for wi := range e.windows {
		if e.active != nil && !refresh && !e.active[wi] {
			evals[wi].skipped = true
			continue
		}
		jobs <- wi
	}
	close(jobs)
	wg.Wait()
	return evals
}

func (e *Engine) evalWindow(mem *rmsd.Memory, pos, coords []geom.Coords, box geom.Box, wi int) windowEval {
	var ev windowEval
	win := e.windows[wi]
	for k, atom := range win {
		p := coords[atom]
		if !p.Finite() {
			ev.err = fmt.Errorf("colvar: atom %d has a non-finite coordinate "+
				"%v", atom, p)
			return ev
		}
		pos[k] = p
	}
	if !e.nopbc {
		box.MakeWhole(pos)
	}

	if e.cutoff != nil {
		if pos[e.cutoff.A].Sub(pos[e.cutoff.B]).Norm() > e.cutoff.Dist {
			ev.skipped = true
			return ev
		}
	}

	if e.optimal != nil {
		ev.optimal = e.optimal.DistanceMem(mem, pos)
	}
	if e.pairwise != nil {
		ev.pairwise = e.pairwise.DistanceMem(nil, pos)
	}
	return ev
}
