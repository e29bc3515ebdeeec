// Package math provides vector, matrix and quaternion types for portal rendering.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Common axis vectors. Forward is the local +Z axis.
var (
	Vec3Zero    = Vec3{}
	Vec3One     = Vec3{1, 1, 1}
	Vec3Up      = Vec3{0, 1, 0}
	Vec3Right   = Vec3{1, 0, 0}
	Vec3Forward = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// SnapToAxes zeroes components of a unit direction whose magnitude is
// below eps and renormalizes, so axis-aligned directions built from
// rotations come out exact.
func (v Vec3) SnapToAxes(eps float32) Vec3 {
	if Abs(v.X) < eps {
		v.X = 0
	}
	if Abs(v.Y) < eps {
		v.Y = 0
	}
	if Abs(v.Z) < eps {
		v.Z = 0
	}
	switch {
	case v.Y == 0 && v.Z == 0 && v.X != 0:
		return Vec3{X: float32(Sign(v.X))}
	case v.X == 0 && v.Z == 0 && v.Y != 0:
		return Vec3{Y: float32(Sign(v.Y))}
	case v.X == 0 && v.Y == 0 && v.Z != 0:
		return Vec3{Z: float32(Sign(v.Z))}
	}
	return v.Normalize()
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return Abs(v.X-other.X) <= eps && Abs(v.Y-other.Y) <= eps && Abs(v.Z-other.Z) <= eps
}

// Vec4 returns v extended with the given w component.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Sign returns -1, 0 or 1. Sign(0) is 0.
func Sign(x float32) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Abs returns the absolute value of a float32.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 {
	return deg * math.Pi / 180
}

// Tan returns the tangent of a float32 angle in radians.
func Tan(rad float32) float32 {
	return float32(math.Tan(float64(rad)))
}
