package world

import (
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/pkg/math"
)

// playerRadius is the half size of the player's trigger box.
const playerRadius = 0.2

// Player is the camera as a traveller. It has no graphics, so there is
// nothing to clone or slice.
type Player struct {
	Controller *camera.FlyController

	previousOffset math.Vec3
}

// NewPlayer wraps a fly controller.
func NewPlayer(c *camera.FlyController) *Player {
	return &Player{Controller: c}
}

// Camera returns the player camera.
func (p *Player) Camera() *camera.Camera {
	return p.Controller.Camera
}

// Transform returns the camera transform.
func (p *Player) Transform() *transform.Transform {
	return p.Controller.Camera.Transform
}

// GraphicsClone returns nil.
func (p *Player) GraphicsClone() *scene.Object { return nil }

// OriginalMaterials returns nil.
func (p *Player) OriginalMaterials() []*material.Material { return nil }

// CloneMaterials returns nil.
func (p *Player) CloneMaterials() []*material.Material { return nil }

// PreviousOffsetFromPortal returns the offset recorded on the last update.
func (p *Player) PreviousOffsetFromPortal() math.Vec3 {
	return p.previousOffset
}

// SetPreviousOffsetFromPortal records the offset from the tracking portal.
func (p *Player) SetPreviousOffsetFromPortal(offset math.Vec3) {
	p.previousOffset = offset
}

// Teleport moves the camera and re-derives yaw and pitch from the new
// rotation so mouse look continues from the new heading.
func (p *Player) Teleport(_, _ *transform.Transform, pos math.Vec3, rot math.Quat) {
	p.Transform().SetPositionAndRotation(pos, rot)
	p.Controller.SyncFromRotation(rot)
}

// EnterPortalThreshold does nothing.
func (p *Player) EnterPortalThreshold() {}

// ExitPortalThreshold does nothing.
func (p *Player) ExitPortalThreshold() {}

// Bounds returns a small box around the camera.
func (p *Player) Bounds() visibility.AABB {
	return visibility.BoxAround(p.Transform().WorldPosition(), playerRadius)
}
