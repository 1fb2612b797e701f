// Package orient finds a mesh rotation minimizing the axis-aligned
// bounding box volume, e.g. for shrink-wrap packaging of 3D-printed or
// warehoused objects.
//
// The search runs in six phases: learned presets, coarse grid, medium
// and fine grids around the incumbent, PCA alignment, and greedy
// coordinate descent. Presets and the coarse grid are offsets composed
// on top of the initial orientation; every later phase produces
// absolute orientations. The optimizer only ever keeps a strictly
// better candidate, so the result is never worse than the input.
package orient

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akmonengine/orient/geom"
	"github.com/akmonengine/orient/pca"
	"github.com/go-gl/mathgl/mgl64"
)

// autoFastModeVertexLimit is the cloud size above which fast mode is
// forced on.
const autoFastModeVertexLimit = 50000

// maxPresets caps how many learned presets are tried.
const maxPresets = 10

// improvementTolerance keeps the refinement phase from accepting float
// noise as progress.
const improvementTolerance = 1e-9

// Result is the outcome of one optimization run.
type Result struct {
	// Rotation is the best orientation found, as XYZ Euler degrees.
	Rotation mgl64.Vec3
	// ReductionPercent is the bounding box volume reduction relative to
	// the initial orientation. 0 when no improvement was found, which
	// is a valid outcome, not an error.
	ReductionPercent float64
	// Evaluations counts the candidate measurements performed.
	Evaluations int
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
	// Degenerate marks an empty cloud or a zero initial volume, where
	// the reduction is undefined and reported as 0.
	Degenerate bool
}

// Optimizer runs the multi-phase rotation search against a single mesh.
// One Optimize call owns its search state exclusively; to optimize
// several meshes in parallel, give each its own Optimizer and provider.
type Optimizer struct {
	points   geom.PointCloud
	provider GeometryProvider
	cfg      Config
	gen      Generator
	log      *slog.Logger
}

// searchState is created per Optimize call and discarded on return.
type searchState struct {
	initial       geom.Euler
	initialVolume float64
	best          geom.Euler
	bestVolume    float64
	evaluations   int
	deadline      time.Time
}

func (s *searchState) withinBudget() bool {
	return time.Now().Before(s.deadline)
}

// New builds an optimizer over the given world-space cloud and
// provider. The cloud is only read for the PCA phase; all measurements
// go through the provider.
func New(points geom.PointCloud, provider GeometryProvider, cfg Config) *Optimizer {
	cfg = cfg.withDefaults()

	if !cfg.FastMode && len(points) > autoFastModeVertexLimit {
		cfg.FastMode = true
		cfg.Logger.Info("fast mode enabled automatically", "vertices", len(points))
	}

	return &Optimizer{
		points:   points,
		provider: provider,
		cfg:      cfg,
		gen:      Generator{ZOnly: cfg.ZOnly, FastMode: cfg.FastMode},
		log:      cfg.Logger,
	}
}

// Optimize searches for the orientation minimizing the bounding box
// volume and applies it through the provider. presets is an optional
// list of previously successful rotations in degrees, tried first as
// offsets from the initial orientation.
//
// Finding no improvement is a valid outcome: the initial rotation comes
// back with a 0% reduction. The only errors returned are a missing
// provider and a failed initial measurement; per-candidate failures are
// logged and skipped.
func (o *Optimizer) Optimize(presets []mgl64.Vec3) (Result, error) {
	if o.provider == nil {
		return Result{}, errors.New("orient: nil geometry provider")
	}

	start := time.Now()
	s := &searchState{deadline: start.Add(o.cfg.MaxTime)}
	s.initial = o.provider.Rotation()
	s.best = s.initial

	if len(o.points) == 0 {
		o.log.Info("empty point cloud, nothing to optimize")

		return Result{Rotation: s.initial.Degrees(), Degenerate: true, Elapsed: time.Since(start)}, nil
	}

	initial, err := o.provider.Measure()
	if err != nil {
		return Result{}, fmt.Errorf("orient: initial measurement: %w", err)
	}
	s.initialVolume = initial.Volume
	s.bestVolume = initial.Volume

	if s.initialVolume == 0 {
		o.log.Info("degenerate initial volume, reduction undefined")

		return Result{Rotation: s.initial.Degrees(), Degenerate: true, Elapsed: time.Since(start)}, nil
	}

	o.log.Info("optimization start",
		"initial_rotation", s.initial.Degrees(),
		"initial_volume", s.initialVolume,
		"z_only", o.cfg.ZOnly,
		"fast_mode", o.cfg.FastMode)

	// Phase 1: learned presets, composed as offsets with the initial
	// orientation since they were recorded independent of it.
	if len(presets) > 0 && s.withinBudget() {
		offsets := presetOffsets(presets, o.cfg.ZOnly, o.log)
		o.log.Info("phase: learned presets", "candidates", len(offsets))
		o.tryOffsets(s, offsets)
	}

	// Phase 2: coarse grid, offsets again.
	if s.withinBudget() {
		candidates := o.gen.Coarse()
		o.log.Info("phase: coarse search", "candidates", len(candidates))
		o.tryOffsets(s, candidates)
	}

	// Phase 3: medium grid around the incumbent, absolute orientations
	// from here on.
	if s.withinBudget() {
		candidates := o.gen.Medium(s.best)
		o.log.Info("phase: medium search", "center", s.best.Degrees(), "candidates", len(candidates))
		o.tryAbsolute(s, candidates)
	}

	// Phase 4: fine grid around the post-medium incumbent.
	if s.withinBudget() {
		candidates := o.gen.Fine(s.best)
		o.log.Info("phase: fine search", "center", s.best.Degrees(), "candidates", len(candidates))
		o.tryAbsolute(s, candidates)
	}

	// Phase 5: PCA alignment with resting-orientation disambiguation.
	if o.cfg.UsePCAInitialGuess && !o.cfg.ZOnly && s.withinBudget() {
		o.tryPCA(s)
	}

	// Phase 6: greedy coordinate descent at decreasing step sizes.
	if s.withinBudget() {
		o.refine(s)
	}

	if err := o.provider.ApplyRotation(s.best); err != nil {
		o.log.Warn("applying final rotation failed", "error", err)
	}

	reduction := (s.initialVolume - s.bestVolume) / s.initialVolume * 100
	elapsed := time.Since(start)

	o.log.Info("optimization complete",
		"best_rotation", s.best.Degrees(),
		"reduction_percent", reduction,
		"evaluations", s.evaluations,
		"elapsed", elapsed)

	return Result{
		Rotation:         s.best.Degrees(),
		ReductionPercent: reduction,
		Evaluations:      s.evaluations,
		Elapsed:          elapsed,
	}, nil
}

// presetOffsets converts degree triples into offsets, capped at
// maxPresets. In ZOnly mode presets touching X or Y are dropped, they
// would tilt an object the caller asked to keep upright.
func presetOffsets(presets []mgl64.Vec3, zOnly bool, log *slog.Logger) []geom.Euler {
	capped := presets[:min(len(presets), maxPresets)]

	offsets := make([]geom.Euler, 0, len(capped))
	for _, p := range capped {
		if zOnly && (p.X() != 0 || p.Y() != 0) {
			log.Info("preset skipped in z-only mode", "preset", p)
			continue
		}
		offsets = append(offsets, geom.EulerFromDegrees(p.X(), p.Y(), p.Z()))
	}

	return offsets
}

// tryOffsets composes each offset with the initial orientation before
// measuring. Composition is matrix multiplication, never per-axis angle
// addition (except the pure-Z shortcut inside Compose, which is the
// same thing).
func (o *Optimizer) tryOffsets(s *searchState, offsets []geom.Euler) {
	candidates := make([]geom.Euler, len(offsets))
	for i, offset := range offsets {
		candidates[i] = s.initial.Compose(offset)
	}

	o.tryAbsolute(s, candidates)
}

// tryAbsolute measures each candidate as a final orientation and keeps
// the strictly best one. Falls out to the parallel path when the
// provider is pure and more than one worker is configured.
func (o *Optimizer) tryAbsolute(s *searchState, candidates []geom.Euler) {
	if evaluator, ok := o.provider.(Evaluator); ok && o.cfg.Workers > 1 {
		o.tryParallel(s, evaluator, candidates)

		return
	}

	for _, candidate := range candidates {
		volume, ok := o.measure(s, candidate)
		if ok && volume < s.bestVolume {
			s.bestVolume = volume
			s.best = candidate
		}
	}
}

// tryParallel maps the batch over the worker pool, then reduces
// sequentially by (volume, index) so the winner matches what a
// sequential pass would have kept.
func (o *Optimizer) tryParallel(s *searchState, evaluator Evaluator, candidates []geom.Euler) {
	type outcome struct {
		volume float64
		err    error
	}

	outcomes := make([]outcome, len(candidates))
	task(o.cfg.Workers, candidates, func(i int, candidate geom.Euler) {
		volume, err := evaluator.Evaluate(candidate)
		outcomes[i] = outcome{volume: volume, err: err}
	})

	for i, out := range outcomes {
		if out.err != nil {
			o.log.Warn("candidate skipped", "rotation", candidates[i].Degrees(), "error", out.err)
			continue
		}
		s.evaluations++
		if out.volume < s.bestVolume {
			s.bestVolume = out.volume
			s.best = candidates[i]
		}
	}
}

// measure evaluates one candidate. A failed application or measurement
// discards the candidate and never aborts the optimization.
func (o *Optimizer) measure(s *searchState, candidate geom.Euler) (float64, bool) {
	if evaluator, ok := o.provider.(Evaluator); ok {
		volume, err := evaluator.Evaluate(candidate)
		if err != nil {
			o.log.Warn("candidate skipped", "rotation", candidate.Degrees(), "error", err)

			return 0, false
		}
		s.evaluations++

		return volume, true
	}

	if err := o.provider.ApplyRotation(candidate); err != nil {
		o.log.Warn("candidate skipped, apply failed", "rotation", candidate.Degrees(), "error", err)

		return 0, false
	}
	metrics, err := o.provider.Measure()
	if err != nil {
		o.log.Warn("candidate skipped, measure failed", "rotation", candidate.Degrees(), "error", err)

		return 0, false
	}
	s.evaluations++

	return metrics.Volume, true
}

// tryPCA runs the aligner once and measures its result plus the six
// 90° variants as absolute orientations. An unavailable aligner makes
// this a no-op, not an error.
func (o *Optimizer) tryPCA(s *searchState) {
	// The aligner works in the mesh's local frame; undo the initial
	// orientation (orthonormal, the transpose inverts it).
	local := o.points.Transform(s.initial.Mat3().Transpose())

	base, ok := pca.Align(local, pca.Config{
		FloorSliceFraction: o.cfg.FloorSliceFraction,
		PitchRange:         o.cfg.PitchRange,
		PitchStep:          o.cfg.PitchStep,
	})
	if !ok {
		o.log.Info("phase: pca alignment skipped, aligner unavailable")

		return
	}

	candidates := o.gen.PCAVariants(base)
	o.log.Info("phase: pca alignment", "base", base.Degrees(), "candidates", len(candidates))
	o.tryAbsolute(s, candidates)
}

// refine runs greedy coordinate descent from the incumbent: perturb one
// axis at a time by ±step and accept strict improvements, sweeping
// until no move helps or the sweep cap is hit, then shrink the step.
// No gradient is ever computed, only trial moves.
func (o *Optimizer) refine(s *searchState) {
	steps := o.cfg.AdaptiveSteps
	maxSweeps := 30
	if o.cfg.FastMode {
		steps = []float64{5, 1, 0.1}
		maxSweeps = 10
	}

	o.log.Info("phase: local refinement", "steps", steps)

	axes := []int{0, 1, 2}
	if o.cfg.ZOnly {
		axes = []int{2}
	}

	current := s.best
	currentVolume := s.bestVolume

	for _, stepDeg := range steps {
		step := mgl64.DegToRad(stepDeg)

		for sweep := 0; sweep < maxSweeps; sweep++ {
			improved := false

			for _, axis := range axes {
				for _, direction := range []float64{1, -1} {
					candidate := perturb(current, axis, direction*step)

					volume, ok := o.measure(s, candidate)
					if ok && volume < currentVolume-improvementTolerance {
						currentVolume = volume
						current = candidate
						improved = true
					}
				}
			}

			if !improved {
				break
			}
		}
	}

	if currentVolume < s.bestVolume {
		s.bestVolume = currentVolume
		s.best = current
		o.log.Info("refinement improved", "rotation", current.Degrees(), "volume", currentVolume)
	}
}

func perturb(e geom.Euler, axis int, delta float64) geom.Euler {
	switch axis {
	case 0:
		e.X += delta
	case 1:
		e.Y += delta
	default:
		e.Z += delta
	}

	return e
}
