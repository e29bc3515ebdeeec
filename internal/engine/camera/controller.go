package camera

import (
	gomath "math"

	"github.com/Faultbox/portals/pkg/math"
)

// FlyController drives a camera with yaw/pitch mouse look and planar movement.
type FlyController struct {
	Camera *Camera

	Yaw   float32 // Radians around world Y
	Pitch float32 // Radians, clamped to MaxPitch

	MaxPitch        float32
	MoveSpeed       float32 // Units per second
	LookSensitivity float32 // Radians per pixel
}

// NewFlyController creates a controller for cam with default settings.
func NewFlyController(cam *Camera) *FlyController {
	c := &FlyController{
		Camera:          cam,
		MaxPitch:        1.5,
		MoveSpeed:       4.0,
		LookSensitivity: 0.003,
	}
	c.SyncFromRotation(cam.Transform.WorldRotation())
	return c
}

// HandleLook updates yaw and pitch from a relative mouse motion.
func (c *FlyController) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	// Clamp pitch
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	c.apply()
}

// HandleMovement moves the camera. forward/right/up are in [-1, 1].
func (c *FlyController) HandleMovement(forward, right, up float32, dt float64) {
	step := c.MoveSpeed * float32(dt)

	// Movement stays on the XZ plane regardless of pitch
	sinY := float32(gomath.Sin(float64(c.Yaw)))
	cosY := float32(gomath.Cos(float64(c.Yaw)))
	fwd := math.Vec3{X: -sinY, Z: -cosY}
	rgt := math.Vec3{X: cosY, Z: -sinY}

	delta := fwd.Scale(forward).Add(rgt.Scale(right)).Add(math.Vec3Up.Scale(up)).Scale(step)
	t := c.Camera.Transform
	t.SetPositionAndRotation(t.WorldPosition().Add(delta), t.WorldRotation())
}

// SyncFromRotation recomputes yaw and pitch from a world rotation, dropping roll.
// Used after the camera is teleported.
func (c *FlyController) SyncFromRotation(rot math.Quat) {
	dir := rot.Rotate(math.Vec3{Z: -1})
	c.Yaw = float32(gomath.Atan2(float64(-dir.X), float64(-dir.Z)))
	y := gomath.Max(-1, gomath.Min(1, float64(dir.Y)))
	c.Pitch = float32(gomath.Asin(y))
	c.apply()
}

// LookAt turns the camera toward a world point.
func (c *FlyController) LookAt(target math.Vec3) {
	view := math.LookAt(c.Camera.Position(), target, math.Vec3Up)
	c.SyncFromRotation(view.Inverse().Rotation())
}

// apply writes yaw and pitch into the camera transform.
func (c *FlyController) apply() {
	yaw := math.QuatFromAxisAngle(math.Vec3Up, c.Yaw)
	pitch := math.QuatFromAxisAngle(math.Vec3Right, c.Pitch)
	t := c.Camera.Transform
	t.SetPositionAndRotation(t.WorldPosition(), yaw.Mul(pitch))
}
