package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB / Metrics Tests
// =============================================================================

func TestAABBMetrics(t *testing.T) {
	tests := []struct {
		name          string
		aabb          AABB
		wantVolume    float64
		wantFootprint float64
		wantSize      mgl64.Vec3
	}{
		{
			name:          "unit cube",
			aabb:          AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			wantVolume:    1,
			wantFootprint: 1,
			wantSize:      mgl64.Vec3{1, 1, 1},
		},
		{
			name:          "plank",
			aabb:          AABB{Min: mgl64.Vec3{-5, -5, -0.5}, Max: mgl64.Vec3{5, 5, 0.5}},
			wantVolume:    100,
			wantFootprint: 100,
			wantSize:      mgl64.Vec3{10, 10, 1},
		},
		{
			name:          "degenerate flat box",
			aabb:          AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 3, 0}},
			wantVolume:    0,
			wantFootprint: 6,
			wantSize:      mgl64.Vec3{2, 3, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aabb.Volume(); got != tt.wantVolume {
				t.Errorf("Volume() = %v, want %v", got, tt.wantVolume)
			}
			if got := tt.aabb.Footprint(); got != tt.wantFootprint {
				t.Errorf("Footprint() = %v, want %v", got, tt.wantFootprint)
			}
			if got := tt.aabb.Size(); got != tt.wantSize {
				t.Errorf("Size() = %v, want %v", got, tt.wantSize)
			}

			m := tt.aabb.Metrics()
			if m.Volume != tt.wantVolume || m.Width != tt.wantSize.X() ||
				m.Depth != tt.wantSize.Y() || m.Height != tt.wantSize.Z() {
				t.Errorf("Metrics() = %+v, inconsistent with box %+v", m, tt.aabb)
			}
		})
	}
}

func TestComputeUnitCube(t *testing.T) {
	cloud := PointCloud{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}

	m := Compute(cloud)
	if m.Volume != 1 {
		t.Errorf("Volume = %v, want 1", m.Volume)
	}
	if m.Min != (mgl64.Vec3{0, 0, 0}) || m.Max != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("corners = %v / %v, want origin / (1,1,1)", m.Min, m.Max)
	}
}

func TestComputeDegenerateClouds(t *testing.T) {
	tests := []struct {
		name  string
		cloud PointCloud
	}{
		{"empty", PointCloud{}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(tt.cloud)
			if m != (Metrics{}) {
				t.Errorf("Compute(%v) = %+v, want zero metrics", tt.cloud, m)
			}
		})
	}
}

func TestComputeSinglePoint(t *testing.T) {
	m := Compute(PointCloud{{3, -2, 7}})

	if m.Volume != 0 || m.Width != 0 || m.Depth != 0 || m.Height != 0 {
		t.Errorf("single point metrics = %+v, want zero extents", m)
	}
	if m.Min != (mgl64.Vec3{3, -2, 7}) || m.Max != m.Min {
		t.Errorf("single point corners = %v / %v", m.Min, m.Max)
	}
}

func TestComputeIdempotent(t *testing.T) {
	cloud := PointCloud{{1, 2, 3}, {-4, 0, 2}, {0.5, -1.5, 9}}

	first := Compute(cloud)
	second := Compute(cloud)
	if first != second {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}

func TestBoundsMatchesExplicitTransform(t *testing.T) {
	cloud := PointCloud{
		{1, 0, 0}, {0, 2, 0}, {0, 0, 3}, {-1, -2, -3}, {0.5, 0.5, 0.5},
	}
	rot := Euler{X: 0.4, Y: -0.9, Z: 1.7}.Mat3()

	fused := cloud.Bounds(rot)
	explicit := Compute(cloud.Transform(rot))

	if math.Abs(fused.Volume-explicit.Volume) > 1e-12 {
		t.Errorf("fused volume %v != explicit volume %v", fused.Volume, explicit.Volume)
	}
	if fused.Min != explicit.Min || fused.Max != explicit.Max {
		t.Errorf("fused corners %v/%v != explicit %v/%v",
			fused.Min, fused.Max, explicit.Min, explicit.Max)
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name  string
		cloud PointCloud
		want  mgl64.Vec3
	}{
		{"empty", PointCloud{}, mgl64.Vec3{}},
		{"single", PointCloud{{1, 2, 3}}, mgl64.Vec3{1, 2, 3}},
		{"symmetric pair", PointCloud{{-1, -1, -1}, {1, 1, 1}}, mgl64.Vec3{0, 0, 0}},
		{"offset cube", PointCloud{
			{1, 1, 1}, {3, 1, 1}, {1, 3, 1}, {3, 3, 1},
			{1, 1, 3}, {3, 1, 3}, {1, 3, 3}, {3, 3, 3},
		}, mgl64.Vec3{2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cloud.Centroid(); got != tt.want {
				t.Errorf("Centroid() = %v, want %v", got, tt.want)
			}
		})
	}
}
