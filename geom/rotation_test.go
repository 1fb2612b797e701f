package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Euler / Matrix Conversion Tests
// =============================================================================

func assertMat3Equal(t *testing.T, got, want mgl64.Mat3, tol float64) {
	t.Helper()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if math.Abs(got.At(row, col)-want.At(row, col)) > tol {
				t.Fatalf("matrix mismatch at (%d,%d): got %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestEulerMat3RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		euler Euler
	}{
		{"identity", Euler{}},
		{"single axis X", Euler{X: 0.4}},
		{"single axis Y", Euler{Y: -1.1}},
		{"single axis Z", Euler{Z: 2.5}},
		{"combined", Euler{X: 0.3, Y: -0.7, Z: 1.9}},
		{"negative angles", Euler{X: -2.8, Y: 0.2, Z: -0.9}},
		{"gimbal lock +90", Euler{X: 0.3, Y: math.Pi / 2, Z: 0.2}},
		{"gimbal lock -90", Euler{X: -0.5, Y: -math.Pi / 2, Z: 1.0}},
		{"near gimbal lock", Euler{X: 0.1, Y: math.Pi/2 - 1e-4, Z: 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.euler.Mat3()
			decomposed := EulerFromMat3(m)
			// The decomposition may pick a different angle triple at
			// gimbal lock; only the matrices must agree.
			assertMat3Equal(t, decomposed.Mat3(), m, 1e-9)
		})
	}
}

func TestEulerComposeMatchesMatrixProduct(t *testing.T) {
	tests := []struct {
		name   string
		base   Euler
		offset Euler
	}{
		{"identity offset", Euler{X: 0.3, Y: 0.5, Z: -0.2}, Euler{}},
		{"identity base", Euler{}, Euler{X: 0.7, Y: -0.1, Z: 0.4}},
		{"general pair", Euler{X: 0.9, Y: -0.4, Z: 1.2}, Euler{X: -0.3, Y: 0.8, Z: -1.5}},
		{"pure Z offset", Euler{X: 0.25, Y: -0.6, Z: 0.1}, Euler{Z: 1.3}},
		{"quarter turns", EulerFromDegrees(90, 0, 0), EulerFromDegrees(0, 90, 0)},
		{"half turn offset", EulerFromDegrees(10, 20, 30), EulerFromDegrees(180, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.base.Compose(tt.offset).Mat3()
			want := tt.base.Mat3().Mul3(tt.offset.Mat3())
			assertMat3Equal(t, got, want, 1e-6)
		})
	}
}

func TestEulerComposePureZKeepsXYExact(t *testing.T) {
	base := Euler{X: 0.123456789, Y: -0.987654321, Z: 0.5}
	offsets := []float64{0.1, -2.4, math.Pi, 7.0}

	for _, z := range offsets {
		composed := base.Compose(Euler{Z: z})
		if composed.X != base.X || composed.Y != base.Y {
			t.Errorf("pure-Z offset %v perturbed X/Y: got (%v, %v), want (%v, %v)",
				z, composed.X, composed.Y, base.X, base.Y)
		}
		if composed.Z != base.Z+z {
			t.Errorf("pure-Z offset %v: Z = %v, want %v", z, composed.Z, base.Z+z)
		}
	}
}

func TestEulerDegreesRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"zero", 0, 0, 0},
		{"axis aligned", 90, 0, -90},
		{"arbitrary", 12.5, -33.3, 170},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deg := EulerFromDegrees(tt.x, tt.y, tt.z).Degrees()
			if math.Abs(deg.X()-tt.x) > 1e-12 ||
				math.Abs(deg.Y()-tt.y) > 1e-12 ||
				math.Abs(deg.Z()-tt.z) > 1e-12 {
				t.Errorf("degrees round trip: got %v, want (%v, %v, %v)", deg, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestEulerMat3IsOrthonormal(t *testing.T) {
	e := Euler{X: 0.6, Y: -1.2, Z: 2.1}
	m := e.Mat3()
	assertMat3Equal(t, m.Mul3(m.Transpose()), mgl64.Ident3(), 1e-12)

	if det := m.Det(); math.Abs(det-1) > 1e-12 {
		t.Errorf("determinant = %v, want 1", det)
	}
}
