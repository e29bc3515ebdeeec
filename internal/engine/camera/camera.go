// Package camera provides perspective cameras and a first-person controller.
package camera

import (
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/pkg/math"
)

// Camera is a perspective camera. It looks down its local -Z axis.
type Camera struct {
	Transform *transform.Transform

	FieldOfView float32 // Vertical field of view, degrees
	Aspect      float32 // Width / height
	Near        float32
	Far         float32

	projection       math.Mat4
	customProjection bool
}

// New creates a camera at the origin.
func New(fovDeg, aspect, near, far float32) *Camera {
	return &Camera{
		Transform:   transform.New(),
		FieldOfView: fovDeg,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
	}
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 {
	return c.Transform.WorldPosition()
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	return c.Transform.WorldToLocal()
}

// BaseProjection returns the projection built from FOV, aspect and clip distances,
// ignoring any override.
func (c *Camera) BaseProjection() math.Mat4 {
	return math.Perspective(math.Deg2Rad(c.FieldOfView), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the override set by SetProjectionMatrix, or the base projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	if c.customProjection {
		return c.projection
	}
	return c.BaseProjection()
}

// SetProjectionMatrix overrides the projection until ResetProjectionMatrix.
func (c *Camera) SetProjectionMatrix(m math.Mat4) {
	c.projection = m
	c.customProjection = true
}

// ResetProjectionMatrix drops the override.
func (c *Camera) ResetProjectionMatrix() {
	c.customProjection = false
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// CalculateObliqueMatrix returns this camera's base projection with the near
// plane replaced by clipPlane, given in camera space.
func (c *Camera) CalculateObliqueMatrix(clipPlane math.Vec4) math.Mat4 {
	return math.ObliqueProjection(c.BaseProjection(), clipPlane)
}

// NearPlaneHalfExtents returns the half width and half height of the near plane.
func (c *Camera) NearPlaneHalfExtents() (halfWidth, halfHeight float32) {
	halfHeight = c.Near * math.Tan(math.Deg2Rad(c.FieldOfView)*0.5)
	return halfHeight * c.Aspect, halfHeight
}

// WorldToViewportPoint maps a world point to viewport space: x and y in
// [0, 1] across the screen, z the distance in front of the camera.
// Points behind the camera have z <= 0 and mirrored x, y.
func (c *Camera) WorldToViewportPoint(p math.Vec3) math.Vec3 {
	view := c.ViewMatrix().TransformVec3(p)
	clip := c.ProjectionMatrix().MulVec4(view.Vec4(1))
	if clip[3] == 0 {
		return math.Vec3{X: 0.5, Y: 0.5, Z: -view.Z}
	}
	return math.Vec3{
		X: (clip[0]/clip[3] + 1) * 0.5,
		Y: (clip[1]/clip[3] + 1) * 0.5,
		Z: -view.Z,
	}
}
