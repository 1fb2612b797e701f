package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler represents an orientation as three rotation angles in radians,
// applied intrinsically in X, Y, Z order. The matrix form is Rx*Ry*Rz.
type Euler struct {
	X, Y, Z float64
}

// EulerFromDegrees builds an Euler from angles given in degrees.
func EulerFromDegrees(x, y, z float64) Euler {
	return Euler{
		X: mgl64.DegToRad(x),
		Y: mgl64.DegToRad(y),
		Z: mgl64.DegToRad(z),
	}
}

// Degrees returns the angles converted to degrees.
func (e Euler) Degrees() mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.RadToDeg(e.X),
		mgl64.RadToDeg(e.Y),
		mgl64.RadToDeg(e.Z),
	}
}

// Mat3 returns the rotation matrix Rx*Ry*Rz.
func (e Euler) Mat3() mgl64.Mat3 {
	return mgl64.Rotate3DX(e.X).Mul3(mgl64.Rotate3DY(e.Y)).Mul3(mgl64.Rotate3DZ(e.Z))
}

// EulerFromMat3 decomposes a rotation matrix into intrinsic X, Y, Z
// angles. At gimbal lock (|sin(Y)| = 1) the X and Z rotations share an
// axis; Z is reported as 0 and the combined angle goes to X.
func EulerFromMat3(m mgl64.Mat3) Euler {
	sy := m.At(0, 2)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	y := math.Asin(sy)

	if math.Abs(sy) > 1-1e-12 {
		x := math.Atan2(m.At(1, 0), m.At(1, 1))
		if sy < 0 {
			x = -x
		}
		return Euler{X: x, Y: y}
	}

	return Euler{
		X: math.Atan2(-m.At(1, 2), m.At(2, 2)),
		Y: y,
		Z: math.Atan2(-m.At(0, 1), m.At(0, 0)),
	}
}

// Compose layers an offset rotation on top of e and returns the result
// in canonical Euler form. Rotations compose by matrix multiplication;
// adding angles per axis is wrong for any offset touching more than the
// innermost axis.
func (e Euler) Compose(offset Euler) Euler {
	if offset.X == 0 && offset.Y == 0 {
		// A pure-Z offset commutes into the innermost intrinsic axis:
		// Rx*Ry*Rz(c)*Rz(t) = Rx*Ry*Rz(c+t). Keeps X and Y bit-exact.
		return Euler{X: e.X, Y: e.Y, Z: e.Z + offset.Z}
	}

	return EulerFromMat3(e.Mat3().Mul3(offset.Mat3()))
}
