package orient

import (
	"io"
	"log/slog"
	"time"
)

// Config enumerates the recognized optimizer options. Start from
// DefaultConfig and adjust; unset numeric fields and a nil Logger fall
// back to their defaults.
type Config struct {
	// AdaptiveSteps are the decreasing refinement step sizes for the
	// local refinement phase, in degrees.
	AdaptiveSteps []float64
	// UsePCAInitialGuess enables the PCA alignment phase.
	UsePCAInitialGuess bool
	// FastMode trades search thoroughness for speed: coarser grids,
	// smaller radii, fewer refinement sweeps. Enabled automatically for
	// clouds above 50,000 vertices.
	FastMode bool
	// ZOnly restricts the search to rotations about the Z axis, keeping
	// the object upright. The returned X and Y angles always equal the
	// initial orientation's.
	ZOnly bool
	// MaxTime is the wall-clock budget. It is checked between phases
	// only; a phase already in progress is never interrupted.
	MaxTime time.Duration
	// Workers parallelizes the grid phases when the provider is a pure
	// Evaluator. Candidate evaluation against live mesh state is a
	// strict dependency chain and always runs sequentially.
	Workers int

	// FloorSliceFraction, PitchRange and PitchStep tune the PCA resting
	// heuristics, see pca.Config.
	FloorSliceFraction float64
	PitchRange         float64
	PitchStep          float64

	// Logger receives phase progress and per-candidate failures.
	// nil discards everything, keeping tests quiet and hermetic.
	Logger *slog.Logger
}

// DefaultConfig returns the standard configuration: full-precision
// search, PCA enabled, a 600 second budget, single worker.
func DefaultConfig() Config {
	return Config{
		AdaptiveSteps:      []float64{5, 2, 1, 0.5, 0.2, 0.1},
		UsePCAInitialGuess: true,
		MaxTime:            600 * time.Second,
		Workers:            1,
		FloorSliceFraction: 0.1,
		PitchRange:         5.0,
		PitchStep:          0.2,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()

	if len(c.AdaptiveSteps) == 0 {
		c.AdaptiveSteps = defaults.AdaptiveSteps
	}
	if c.MaxTime <= 0 {
		c.MaxTime = defaults.MaxTime
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.FloorSliceFraction <= 0 {
		c.FloorSliceFraction = defaults.FloorSliceFraction
	}
	if c.PitchRange <= 0 {
		c.PitchRange = defaults.PitchRange
	}
	if c.PitchStep <= 0 {
		c.PitchStep = defaults.PitchStep
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}
