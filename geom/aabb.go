package geom

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Size returns the per-axis extents (width, depth, height)
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Volume returns width * depth * height
func (a AABB) Volume() float64 {
	size := a.Size()

	return size.X() * size.Y() * size.Z()
}

// Footprint returns the XY area, relevant for resting stability
func (a AABB) Footprint() float64 {
	size := a.Size()

	return size.X() * size.Y()
}

// Metrics bundles the measurements derived from a bounding box.
// They are recomputed fresh for every candidate orientation and never
// cached, because the underlying transform changes between candidates.
type Metrics struct {
	Volume    float64
	Footprint float64
	Width     float64
	Depth     float64
	Height    float64
	Min       mgl64.Vec3
	Max       mgl64.Vec3
}

// Metrics derives the measurement bundle for the box
func (a AABB) Metrics() Metrics {
	size := a.Size()

	return Metrics{
		Volume:    size.X() * size.Y() * size.Z(),
		Footprint: size.X() * size.Y(),
		Width:     size.X(),
		Depth:     size.Y(),
		Height:    size.Z(),
		Min:       a.Min,
		Max:       a.Max,
	}
}
