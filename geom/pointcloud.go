package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PointCloud is an ordered set of positions. The optimizer treats it as
// read-only; only the aggregate extrema matter, vertex order does not.
type PointCloud []mgl64.Vec3

// Centroid returns the mean position of the cloud, or the zero vector
// for an empty cloud.
func (p PointCloud) Centroid() mgl64.Vec3 {
	if len(p) == 0 {
		return mgl64.Vec3{}
	}

	var sum mgl64.Vec3
	for _, point := range p {
		sum = sum.Add(point)
	}

	return sum.Mul(1.0 / float64(len(p)))
}

// Transform returns a new cloud with every point rotated by m.
func (p PointCloud) Transform(m mgl64.Mat3) PointCloud {
	out := make(PointCloud, len(p))
	for i, point := range p {
		out[i] = m.Mul3x1(point)
	}

	return out
}

// Compute returns the bounding box metrics of the cloud as-is.
// An empty cloud yields the zero Metrics: volume 0, all extents 0.
func Compute(points PointCloud) Metrics {
	return points.Bounds(mgl64.Ident3())
}

// Bounds computes the bounding box metrics of the cloud under the given
// rotation without materializing the transformed points. This is the
// pure evaluation path: no shared state is touched, so independent
// candidates can be measured concurrently.
func (p PointCloud) Bounds(rot mgl64.Mat3) Metrics {
	if len(p) == 0 {
		return Metrics{}
	}

	corner := rot.Mul3x1(p[0])
	min := corner
	max := corner

	for i := 1; i < len(p); i++ {
		corner = rot.Mul3x1(p[i])

		min[0] = math.Min(min[0], corner[0])
		min[1] = math.Min(min[1], corner[1])
		min[2] = math.Min(min[2], corner[2])

		max[0] = math.Max(max[0], corner[0])
		max[1] = math.Max(max[1], corner[1])
		max[2] = math.Max(max[2], corner[2])
	}

	return AABB{Min: min, Max: max}.Metrics()
}
