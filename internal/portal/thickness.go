package portal

import (
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/pkg/math"
)

// ScreenThickness returns the distance from cam's position to a corner of
// its near plane. A screen at least this thick cannot be cut by the near
// plane while the camera is inside it.
func ScreenThickness(cam *camera.Camera) float32 {
	halfWidth, halfHeight := cam.NearPlaneHalfExtents()
	return math.Vec3{X: halfWidth, Y: halfHeight, Z: cam.Near}.Length()
}

// ProtectScreenFromClipping thickens the screen along the portal normal and
// shifts it away from viewPoint by half the thickness. It returns the
// thickness applied.
func (p *Portal) ProtectScreenFromClipping(viewPoint math.Vec3) float32 {
	thickness := ScreenThickness(p.playerCam)

	toPortal := p.Transform.WorldPosition().Sub(viewPoint)
	camFacingSameDirAsPortal := p.Transform.Forward().Dot(toPortal) > 0

	screen := p.Screen.Transform
	screen.Scale.Z = thickness
	if camFacingSameDirAsPortal {
		screen.Position = math.Vec3{Z: thickness * 0.5}
	} else {
		screen.Position = math.Vec3{Z: -thickness * 0.5}
	}
	return thickness
}
