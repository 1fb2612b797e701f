package orient

import (
	"math"

	"github.com/akmonengine/orient/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Generator produces ordered candidate orientations at decreasing
// angular granularity. Its output is fully deterministic: identical
// flags and centers yield identical sequences, which the regression
// tests rely on.
type Generator struct {
	// ZOnly restricts candidates to rotations about Z.
	ZOnly bool
	// FastMode uses coarser grids and smaller radii.
	FastMode bool
}

// Coarse returns the Cartesian product of a fixed angle set per axis,
// deduplicated, iterated X outer, Y middle, Z inner. In ZOnly mode it
// returns 24 single-axis Z rotations at 15° steps instead.
func (g Generator) Coarse() []geom.Euler {
	if g.ZOnly {
		rotations := make([]geom.Euler, 0, 24)
		for z := 0; z < 360; z += 15 {
			rotations = append(rotations, geom.EulerFromDegrees(0, 0, float64(z)))
		}

		return rotations
	}

	angles := []float64{0, 45, -45, 90, -90, 180}
	if g.FastMode {
		angles = []float64{0, 45, 90, 180}
	}

	seen := make(map[[3]float64]struct{}, len(angles)*len(angles)*len(angles))
	rotations := make([]geom.Euler, 0, len(angles)*len(angles)*len(angles))
	for _, x := range angles {
		for _, y := range angles {
			for _, z := range angles {
				key := [3]float64{x, y, z}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				rotations = append(rotations, geom.EulerFromDegrees(x, y, z))
			}
		}
	}

	return rotations
}

// Medium returns a 15° grid within ±45° of center (30°/±30° in fast
// mode). In ZOnly mode it degenerates to a Z sweep around center.
func (g Generator) Medium(center geom.Euler) []geom.Euler {
	step, radius := 15.0, 45.0
	if g.FastMode {
		step, radius = 30.0, 30.0
	}
	if g.ZOnly {
		return zSweep(center, 15.0, 30.0)
	}

	return gridAround(center, step, radius)
}

// Fine returns a 5° grid within ±15° of center (15°/±15° in fast
// mode). In ZOnly mode it degenerates to a Z sweep around center.
func (g Generator) Fine(center geom.Euler) []geom.Euler {
	step, radius := 5.0, 15.0
	if g.FastMode {
		step = 15.0
	}
	if g.ZOnly {
		return zSweep(center, 5.0, 15.0)
	}

	return gridAround(center, step, radius)
}

// PCAVariants returns the base rotation plus the six variants obtained
// by adding or subtracting 90° on exactly one axis. PCA finds the
// alignment axes reliably but may pick the wrong face as front; the
// variants cover that case.
func (g Generator) PCAVariants(base geom.Euler) []geom.Euler {
	const quarter = math.Pi / 2

	return []geom.Euler{
		base,
		{X: base.X + quarter, Y: base.Y, Z: base.Z},
		{X: base.X - quarter, Y: base.Y, Z: base.Z},
		{X: base.X, Y: base.Y + quarter, Z: base.Z},
		{X: base.X, Y: base.Y - quarter, Z: base.Z},
		{X: base.X, Y: base.Y, Z: base.Z + quarter},
		{X: base.X, Y: base.Y, Z: base.Z - quarter},
	}
}

// gridAround returns every triple on a regular grid of step degrees
// within ±radius of center, inclusive of endpoints that align with the
// step. Indexed stepping avoids float accumulation drift.
func gridAround(center geom.Euler, step, radius float64) []geom.Euler {
	c := center.Degrees()
	n := int((2*radius+1e-9)/step) + 1

	rotations := make([]geom.Euler, 0, n*n*n)
	for i := 0; i < n; i++ {
		x := c.X() - radius + float64(i)*step
		for j := 0; j < n; j++ {
			y := c.Y() - radius + float64(j)*step
			for k := 0; k < n; k++ {
				z := c.Z() - radius + float64(k)*step
				rotations = append(rotations, geom.EulerFromDegrees(x, y, z))
			}
		}
	}

	return rotations
}

// zSweep returns a single-axis Z grid around center.Z. The X and Y
// angles are copied from center verbatim, never recomputed, so the
// upright orientation survives bit-exact through the ZOnly pipeline.
func zSweep(center geom.Euler, step, radius float64) []geom.Euler {
	cz := mgl64.RadToDeg(center.Z)
	n := int((2*radius+1e-9)/step) + 1

	rotations := make([]geom.Euler, 0, n)
	for i := 0; i < n; i++ {
		z := cz - radius + float64(i)*step
		rotations = append(rotations, geom.Euler{
			X: center.X,
			Y: center.Y,
			Z: mgl64.DegToRad(z),
		})
	}

	return rotations
}
