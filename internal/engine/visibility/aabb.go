package visibility

import (
	"github.com/Faultbox/portals/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// UnitCube is the local bounds of a unit cube centered on the origin.
var UnitCube = AABB{
	Min: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5},
	Max: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
}

// cubeCornerOffsets are the eight corner directions of a box around its center.
var cubeCornerOffsets = [8]math.Vec3{
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
}

// Center returns the center point of the AABB.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extents returns half the size on each axis.
func (b AABB) Extents() math.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Corners returns the eight corners.
func (b AABB) Corners() [8]math.Vec3 {
	var out [8]math.Vec3
	c, e := b.Center(), b.Extents()
	for i, o := range cubeCornerOffsets {
		out[i] = c.Add(e.Mul(o))
	}
	return out
}

// Expand returns the box grown by pad on every side.
func (b AABB) Expand(pad float32) AABB {
	p := math.Vec3{X: pad, Y: pad, Z: pad}
	return AABB{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

// Intersects reports whether two boxes overlap (touching counts).
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Contains reports whether p lies inside the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the world-space box enclosing b transformed by m.
func (b AABB) Transform(m math.Mat4) AABB {
	corners := b.Corners()
	first := m.TransformVec3(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		w := m.TransformVec3(c)
		out.Min = out.Min.Min(w)
		out.Max = out.Max.Max(w)
	}
	return out
}

// BoxAround returns a box of the given half size centered on p.
func BoxAround(p math.Vec3, half float32) AABB {
	h := math.Vec3{X: half, Y: half, Z: half}
	return AABB{Min: p.Sub(h), Max: p.Add(h)}
}
