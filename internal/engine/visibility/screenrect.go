package visibility

import (
	gomath "math"

	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/pkg/math"
)

// MeshRenderable has local-space bounds and a local-to-world matrix.
type MeshRenderable interface {
	LocalBounds() AABB
	LocalToWorld() math.Mat4
}

// MinMax3D is a viewport-space rectangle with a depth range.
type MinMax3D struct {
	XMin, XMax float32
	YMin, YMax float32
	ZMin, ZMax float32
}

func newMinMax3D(lo, hi float32) MinMax3D {
	return MinMax3D{XMin: lo, XMax: hi, YMin: lo, YMax: hi, ZMin: lo, ZMax: hi}
}

// AddPoint grows the rectangle to include p.
func (m *MinMax3D) AddPoint(p math.Vec3) {
	m.XMin = min(m.XMin, p.X)
	m.XMax = max(m.XMax, p.X)
	m.YMin = min(m.YMin, p.Y)
	m.YMax = max(m.YMax, p.Y)
	m.ZMin = min(m.ZMin, p.Z)
	m.ZMax = max(m.ZMax, p.Z)
}

// ScreenRect returns the viewport-space rectangle covered by r's local
// bounds. Corners behind the camera are clamped to the opposite edge since
// projection mirrors them. If every corner is behind the camera the zero
// rectangle is returned.
func ScreenRect(r MeshRenderable, cam *camera.Camera) MinMax3D {
	rect := newMinMax3D(gomath.MaxFloat32, -gomath.MaxFloat32)
	localToWorld := r.LocalToWorld()
	anyInFront := false

	for _, corner := range r.LocalBounds().Corners() {
		p := cam.WorldToViewportPoint(localToWorld.TransformVec3(corner))
		if p.Z > 0 {
			anyInFront = true
		} else {
			if p.X <= 0.5 {
				p.X = 1
			} else {
				p.X = 0
			}
			if p.Y <= 0.5 {
				p.Y = 1
			} else {
				p.Y = 0
			}
		}
		rect.AddPoint(p)
	}

	if !anyInFront {
		return MinMax3D{}
	}
	return rect
}

// BoundsOverlap reports whether far is behind near and their viewport
// rectangles overlap as seen from cam.
func BoundsOverlap(near, far MeshRenderable, cam *camera.Camera) bool {
	n := ScreenRect(near, cam)
	f := ScreenRect(far, cam)

	// Far object must be further away than the near object
	if f.ZMax <= n.ZMin {
		return false
	}
	if f.XMax < n.XMin || f.XMin > n.XMax {
		return false
	}
	if f.YMax < n.YMin || f.YMin > n.YMax {
		return false
	}
	return true
}
