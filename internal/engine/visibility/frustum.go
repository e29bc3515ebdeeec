// Package visibility provides frustum culling and screen-space bounds tests.
package visibility

import (
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/pkg/math"
)

// Plane represents a plane in 3D space (normal·p + distance = 0).
// The normal points to the inside of the frustum.
type Plane struct {
	Normal   math.Vec3
	Distance float32
}

// DistanceToPoint returns the signed distance of p from the plane.
func (p Plane) DistanceToPoint(point math.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Renderable is anything with world-space bounds.
type Renderable interface {
	Bounds() AABB
}

// FrustumPlanes extracts the six planes of a view-projection matrix
// using the Gribb/Hartmann method.
// Planes are returned in order: left, right, bottom, top, near, far.
func FrustumPlanes(vp math.Mat4) [6]Plane {
	// Rows of the column-major matrix
	r0 := math.Vec4{vp[0], vp[4], vp[8], vp[12]}
	r1 := math.Vec4{vp[1], vp[5], vp[9], vp[13]}
	r2 := math.Vec4{vp[2], vp[6], vp[10], vp[14]}
	r3 := math.Vec4{vp[3], vp[7], vp[11], vp[15]}

	return [6]Plane{
		planeFromRow(add4(r3, r0)),
		planeFromRow(sub4(r3, r0)),
		planeFromRow(add4(r3, r1)),
		planeFromRow(sub4(r3, r1)),
		planeFromRow(add4(r3, r2)),
		planeFromRow(sub4(r3, r2)),
	}
}

// TestPlanesAABB reports whether the box is at least partly on the positive
// side of every plane.
func TestPlanesAABB(planes [6]Plane, box AABB) bool {
	for _, p := range planes {
		// Select the positive vertex for this plane normal
		v := box.Max
		if p.Normal.X < 0 {
			v.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			v.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			v.Z = box.Min.Z
		}
		// If positive vertex is outside, AABB is outside
		if p.DistanceToPoint(v) < 0 {
			return false
		}
	}
	return true
}

// VisibleFromCamera reports whether r's bounds intersect cam's view frustum.
func VisibleFromCamera(r Renderable, cam *camera.Camera) bool {
	planes := FrustumPlanes(cam.ViewProjection())
	return TestPlanesAABB(planes, r.Bounds())
}

func planeFromRow(r math.Vec4) Plane {
	n := math.Vec3{X: r[0], Y: r[1], Z: r[2]}
	length := n.Length()
	if length == 0 {
		return Plane{Normal: n, Distance: r[3]}
	}
	return Plane{Normal: n.Scale(1 / length), Distance: r[3] / length}
}

func add4(a, b math.Vec4) math.Vec4 {
	return math.Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub4(a, b math.Vec4) math.Vec4 {
	return math.Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}
