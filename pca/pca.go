// Package pca aligns a point cloud's principal axes to the world axes.
//
// The eigenbasis of the covariance matrix only determines the axes up
// to sign, so the raw alignment may rest the object upside down. The
// aligner disambiguates by scoring both candidates with a floor-slice
// footprint heuristic, then fine-tunes the pitch to minimize height.
package pca

import (
	"math"

	"github.com/akmonengine/orient/geom"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Config tunes the alignment heuristics. The defaults are empirically
// chosen constants; they may need adjusting per mesh category.
type Config struct {
	// FloorSliceFraction selects the bottom fraction of points (by
	// transformed Z) whose XY footprint scores a resting orientation.
	FloorSliceFraction float64
	// PitchRange bounds the pitch fine-tune sweep, in degrees.
	PitchRange float64
	// PitchStep is the sweep increment, in degrees.
	PitchStep float64
}

// DefaultConfig returns the standard heuristic constants.
func DefaultConfig() Config {
	return Config{
		FloorSliceFraction: 0.1,
		PitchRange:         5.0,
		PitchStep:          0.2,
	}
}

// Align computes a rotation mapping the cloud's principal axes onto the
// world axes, with the dominant axis along world X. It returns false
// when fewer than 3 points are supplied or the eigen-decomposition
// fails; callers should then skip the alignment, not abort.
//
// The result carries no volume guarantee. It is a candidate like any
// other and must still be measured against the incumbent.
func Align(points geom.PointCloud, cfg Config) (geom.Euler, bool) {
	if len(points) < 3 {
		return geom.Euler{}, false
	}

	base, ok := principalRotation(points)
	if !ok {
		return geom.Euler{}, false
	}

	// The eigenvectors carry arbitrary signs, so the base candidate may
	// place the object upside down. Score it against its 180° X-flip by
	// floor-slice footprint: the orientation resting on its widest flat
	// face wins.
	flipped := mgl64.Rotate3DX(math.Pi).Mul3(base)
	winner := base
	if floorSliceArea(points, flipped, cfg.FloorSliceFraction) >
		floorSliceArea(points, base, cfg.FloorSliceFraction) {
		winner = flipped
	}

	return geom.EulerFromMat3(tunePitch(points, winner, cfg)), true
}

// principalRotation builds the rotation whose rows are the principal
// axes of the cloud, ordered by descending variance. Applying it maps
// the dominant axis onto world X and the flattest onto world Z.
func principalRotation(points geom.PointCloud) (mgl64.Mat3, bool) {
	centroid := points.Centroid()

	var xx, xy, xz, yy, yz, zz float64
	for _, p := range points {
		d := p.Sub(centroid)
		xx += d.X() * d.X()
		xy += d.X() * d.Y()
		xz += d.X() * d.Z()
		yy += d.Y() * d.Y()
		yz += d.Y() * d.Z()
		zz += d.Z() * d.Z()
	}
	n := float64(len(points))

	cov := mat.NewSymDense(3, []float64{
		xx / n, xy / n, xz / n,
		xy / n, yy / n, yz / n,
		xz / n, yz / n, zz / n,
	})

	var eigen mat.EigenSym
	if !eigen.Factorize(cov, true) {
		return mgl64.Mat3{}, false
	}

	var vecs mat.Dense
	eigen.VectorsTo(&vecs)

	// Eigenvalues come in ascending order; reverse so the dominant axis
	// lands on world X.
	axes := [3]mgl64.Vec3{
		{vecs.At(0, 2), vecs.At(1, 2), vecs.At(2, 2)},
		{vecs.At(0, 1), vecs.At(1, 1), vecs.At(2, 1)},
		{vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)},
	}

	// An eigenbasis can be a reflection (determinant -1); flip the last
	// axis to keep a proper rotation, otherwise the Euler decomposition
	// is meaningless.
	if axes[0].Cross(axes[1]).Dot(axes[2]) < 0 {
		axes[2] = axes[2].Mul(-1)
	}

	// Rows are the principal axes: the matrix maps axis i onto world
	// axis i, the exact inverse of the orthonormal eigenbasis.
	return mgl64.Mat3{
		axes[0].X(), axes[1].X(), axes[2].X(),
		axes[0].Y(), axes[1].Y(), axes[2].Y(),
		axes[0].Z(), axes[1].Z(), axes[2].Z(),
	}, true
}

// floorSliceArea scores a candidate orientation by the XY footprint of
// its lowest points. A slice with fewer than 3 points scores 0.
func floorSliceArea(points geom.PointCloud, rot mgl64.Mat3, fraction float64) float64 {
	minZ := math.Inf(1)
	maxZ := math.Inf(-1)
	for _, p := range points {
		z := rot.Mul3x1(p).Z()
		minZ = math.Min(minZ, z)
		maxZ = math.Max(maxZ, z)
	}

	threshold := minZ + (maxZ-minZ)*fraction

	count := 0
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		t := rot.Mul3x1(p)
		if t.Z() >= threshold {
			continue
		}
		count++
		minX = math.Min(minX, t.X())
		minY = math.Min(minY, t.Y())
		maxX = math.Max(maxX, t.X())
		maxY = math.Max(maxY, t.Y())
	}

	if count < 3 {
		return 0
	}

	return (maxX - minX) * (maxY - minY)
}

// tunePitch sweeps a small rotation about the narrower of the X/Y
// extents (the width axis) and keeps the angle minimizing the height.
// The Z coordinate under a pitch rotation is computed analytically
// instead of reapplying full matrices, which keeps the sweep cheap.
func tunePitch(points geom.PointCloud, rot mgl64.Mat3, cfg Config) mgl64.Mat3 {
	transformed := points.Transform(rot)
	dims := geom.Compute(transformed)

	aboutX := dims.Width < dims.Depth

	bestAngle := 0.0
	bestHeight := dims.Height

	steps := int(math.Round(cfg.PitchRange / cfg.PitchStep))
	for i := -steps; i <= steps; i++ {
		rad := mgl64.DegToRad(float64(i) * cfg.PitchStep)
		c, s := math.Cos(rad), math.Sin(rad)

		minZ := math.Inf(1)
		maxZ := math.Inf(-1)
		for _, t := range transformed {
			var z float64
			if aboutX {
				z = t.Y()*s + t.Z()*c
			} else {
				z = -t.X()*s + t.Z()*c
			}
			minZ = math.Min(minZ, z)
			maxZ = math.Max(maxZ, z)
		}

		if h := maxZ - minZ; h < bestHeight {
			bestHeight = h
			bestAngle = rad
		}
	}

	if bestAngle == 0 {
		return rot
	}

	correction := mgl64.Rotate3DY(bestAngle)
	if aboutX {
		correction = mgl64.Rotate3DX(bestAngle)
	}

	return correction.Mul3(rot)
}
