package scene

import (
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/pkg/math"
)

// Mesh selects the built-in geometry an object is drawn with.
type Mesh int

const (
	// MeshCube is a unit cube centered on the origin.
	MeshCube Mesh = iota
	// MeshQuad is a unit quad in the local XY plane.
	MeshQuad
)

// Object is a renderable with one material per submesh.
type Object struct {
	Name      string
	Transform *transform.Transform
	Mesh      Mesh
	Materials []*material.Material
	Enabled   bool
}

// NewObject creates an enabled object with an identity transform.
func NewObject(name string, mesh Mesh, materials ...*material.Material) *Object {
	return &Object{
		Name:      name,
		Transform: transform.New(),
		Mesh:      mesh,
		Materials: materials,
		Enabled:   true,
	}
}

// Material returns the first material, or nil.
func (o *Object) Material() *material.Material {
	if len(o.Materials) == 0 {
		return nil
	}
	return o.Materials[0]
}

// LocalBounds returns the mesh bounds in local space.
func (o *Object) LocalBounds() visibility.AABB {
	if o.Mesh == MeshQuad {
		return visibility.AABB{
			Min: math.Vec3{X: -0.5, Y: -0.5},
			Max: math.Vec3{X: 0.5, Y: 0.5},
		}
	}
	return visibility.UnitCube
}

// LocalToWorld returns the object's local-to-world matrix.
func (o *Object) LocalToWorld() math.Mat4 {
	return o.Transform.LocalToWorld()
}

// Bounds returns the world-space bounds.
func (o *Object) Bounds() visibility.AABB {
	return o.LocalBounds().Transform(o.LocalToWorld())
}

// Clone duplicates the object with deep-copied materials and a detached
// transform at the same world pose.
func (o *Object) Clone(name string) *Object {
	mats := make([]*material.Material, len(o.Materials))
	for i, m := range o.Materials {
		mats[i] = m.Clone(m.Name + " (clone)")
	}
	c := NewObject(name, o.Mesh, mats...)
	c.Transform.SetPositionAndRotation(o.Transform.WorldPosition(), o.Transform.WorldRotation())
	c.Transform.Scale = o.Transform.Scale
	c.Enabled = o.Enabled
	return c
}
