// Package transform provides hierarchical position/rotation/scale transforms.
package transform

import (
	"github.com/Faultbox/portals/pkg/math"
)

// Transform is a local pose relative to an optional parent.
// Position, Rotation and Scale are local values.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	parent *Transform
}

// New creates an identity transform.
func New() *Transform {
	return &Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One,
	}
}

// NewAt creates a root transform at the given world pose.
func NewAt(pos math.Vec3, rot math.Quat) *Transform {
	t := New()
	t.Position = pos
	t.Rotation = rot
	return t
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// SetParent attaches t to parent, keeping its local values.
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
}

// LocalMatrix returns the local TRS matrix.
func (t *Transform) LocalMatrix() math.Mat4 {
	return math.TRS(t.Position, t.Rotation, t.Scale)
}

// LocalToWorld returns the matrix mapping local space to world space.
func (t *Transform) LocalToWorld() math.Mat4 {
	if t.parent == nil {
		return t.LocalMatrix()
	}
	return t.parent.LocalToWorld().Mul(t.LocalMatrix())
}

// WorldToLocal returns the matrix mapping world space to local space.
func (t *Transform) WorldToLocal() math.Mat4 {
	return t.LocalToWorld().Inverse()
}

// WorldPosition returns the position in world space.
func (t *Transform) WorldPosition() math.Vec3 {
	if t.parent == nil {
		return t.Position
	}
	return t.parent.LocalToWorld().TransformVec3(t.Position)
}

// WorldRotation returns the rotation in world space.
func (t *Transform) WorldRotation() math.Quat {
	if t.parent == nil {
		return t.Rotation
	}
	return t.parent.WorldRotation().Mul(t.Rotation)
}

// axisEpsilon is the float32 residue left by quaternion rotation of a unit
// axis.
const axisEpsilon = 1e-6

// Forward returns the world-space local +Z axis.
func (t *Transform) Forward() math.Vec3 {
	return t.WorldRotation().Rotate(math.Vec3Forward).SnapToAxes(axisEpsilon)
}

// Right returns the world-space local +X axis.
func (t *Transform) Right() math.Vec3 {
	return t.WorldRotation().Rotate(math.Vec3Right).SnapToAxes(axisEpsilon)
}

// Up returns the world-space local +Y axis.
func (t *Transform) Up() math.Vec3 {
	return t.WorldRotation().Rotate(math.Vec3Up).SnapToAxes(axisEpsilon)
}

// SetPositionAndRotation sets the world-space pose.
func (t *Transform) SetPositionAndRotation(pos math.Vec3, rot math.Quat) {
	if t.parent == nil {
		t.Position = pos
		t.Rotation = rot.Normalize()
		return
	}
	t.Position = t.parent.WorldToLocal().TransformVec3(pos)
	t.Rotation = t.parent.WorldRotation().Conjugate().Mul(rot).Normalize()
}

// TransformPoint maps a local point to world space.
func (t *Transform) TransformPoint(p math.Vec3) math.Vec3 {
	return t.LocalToWorld().TransformVec3(p)
}

// TransformVector maps a local vector to world space, including scale.
func (t *Transform) TransformVector(v math.Vec3) math.Vec3 {
	return t.LocalToWorld().TransformDirection(v)
}

// InverseTransformVector maps a world vector to local space, including scale.
func (t *Transform) InverseTransformVector(v math.Vec3) math.Vec3 {
	return t.WorldToLocal().TransformDirection(v)
}
