package orient

import (
	"github.com/akmonengine/orient/geom"
)

// GeometryProvider is the narrow boundary with the host owning the mesh
// state. The optimizer applies candidate orientations and reads back
// the bounding box through it, potentially hundreds of times per run;
// every Measure must reflect the current transform, not a cached one.
type GeometryProvider interface {
	// Rotation reports the current orientation.
	Rotation() geom.Euler
	// ApplyRotation sets the absolute orientation of the mesh.
	ApplyRotation(rotation geom.Euler) error
	// Measure returns the bounding box metrics at the current orientation.
	Measure() (geom.Metrics, error)
}

// Evaluator is the pure form of a provider: measuring a candidate
// without mutating any shared state. Providers implementing it unlock
// parallel grid evaluation (see Config.Workers) and a cheaper
// refinement loop.
type Evaluator interface {
	Evaluate(rotation geom.Euler) (float64, error)
}

// PointCloudProvider serves a static point cloud. It implements both
// GeometryProvider and Evaluator and never fails.
type PointCloudProvider struct {
	local   geom.PointCloud
	current geom.Euler
}

// NewPointCloudProvider wraps a world-space cloud captured at the given
// orientation. The cloud is stored in the mesh's local frame so that
// absolute rotations can be applied to it directly.
func NewPointCloudProvider(points geom.PointCloud, initial geom.Euler) *PointCloudProvider {
	// Orthonormal rotation, the transpose is the exact inverse.
	return &PointCloudProvider{
		local:   points.Transform(initial.Mat3().Transpose()),
		current: initial,
	}
}

func (p *PointCloudProvider) Rotation() geom.Euler {
	return p.current
}

func (p *PointCloudProvider) ApplyRotation(rotation geom.Euler) error {
	p.current = rotation

	return nil
}

func (p *PointCloudProvider) Measure() (geom.Metrics, error) {
	return p.local.Bounds(p.current.Mat3()), nil
}

// Evaluate measures a candidate without touching the current
// orientation, so concurrent calls are safe.
func (p *PointCloudProvider) Evaluate(rotation geom.Euler) (float64, error) {
	return p.local.Bounds(rotation.Mat3()).Volume, nil
}
