package portal

import (
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/pkg/math"
)

// ClipPlaneProjection returns the projection portalCam should render with so
// that geometry between it and the plane of clipPlane is cut away. The plane
// is expressed in portalCam's space and biased by offset. When the plane is
// within limit of the camera the oblique matrix is skipped and playerCam's
// projection is returned unchanged; oblique reports which one was chosen.
func ClipPlaneProjection(portalCam, playerCam *camera.Camera, clipPlane *transform.Transform, offset, limit float32) (proj math.Mat4, oblique bool) {
	forward := clipPlane.Forward()
	pos := clipPlane.WorldPosition()
	dot := float32(math.Sign(forward.Dot(pos.Sub(portalCam.Position()))))

	view := portalCam.ViewMatrix()
	camSpacePos := view.TransformVec3(pos)
	camSpaceNormal := view.TransformDirection(forward).Scale(dot)
	camSpaceDst := -camSpacePos.Dot(camSpaceNormal) + offset

	if math.Abs(camSpaceDst) > limit {
		return playerCam.CalculateObliqueMatrix(camSpaceNormal.Vec4(camSpaceDst)), true
	}
	return playerCam.ProjectionMatrix(), false
}

// setNearClipPlane moves the portal camera's near plane onto this portal's
// surface so nothing between the camera and the portal is drawn.
func (p *Portal) setNearClipPlane() {
	proj, _ := ClipPlaneProjection(p.camera, p.playerCam, p.Transform, p.NearClipOffset, p.NearClipLimit)
	p.camera.SetProjectionMatrix(proj)
}
