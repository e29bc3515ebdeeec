package portal

import (
	"fmt"

	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/pkg/math"
)

// Traveller is anything that can pass through a portal.
type Traveller interface {
	// Transform is the pose the portal teleports.
	Transform() *transform.Transform

	// GraphicsClone is the duplicate drawn on the far side, or nil.
	GraphicsClone() *scene.Object

	// OriginalMaterials and CloneMaterials are parallel lists that receive
	// slice parameters every frame.
	OriginalMaterials() []*material.Material
	CloneMaterials() []*material.Material

	PreviousOffsetFromPortal() math.Vec3
	SetPreviousOffsetFromPortal(offset math.Vec3)

	// Teleport moves the traveller to pos/rot. from and to are the source
	// and destination portal transforms.
	Teleport(from, to *transform.Transform, pos math.Vec3, rot math.Quat)

	EnterPortalThreshold()
	ExitPortalThreshold()
}

// mustMatchMaterials panics if the original and clone material lists differ
// in length.
func mustMatchMaterials(t Traveller) {
	orig, clone := len(t.OriginalMaterials()), len(t.CloneMaterials())
	if orig != clone {
		panic(fmt.Sprintf("portal: traveller has %d original materials but %d clone materials", orig, clone))
	}
}

// Body is a traveller with a visible graphics object and a velocity.
type Body struct {
	Graphics *scene.Object
	Velocity math.Vec3

	clone          *scene.Object
	previousOffset math.Vec3
}

// NewBody wraps graphics as a traveller. The clone is created up front,
// disabled, with copies of every material.
func NewBody(graphics *scene.Object) *Body {
	clone := graphics.Clone(graphics.Name + " (clone)")
	clone.Enabled = false
	b := &Body{
		Graphics: graphics,
		clone:    clone,
	}
	mustMatchMaterials(b)
	return b
}

// Transform returns the graphics object's transform.
func (b *Body) Transform() *transform.Transform {
	return b.Graphics.Transform
}

// GraphicsClone returns the clone object.
func (b *Body) GraphicsClone() *scene.Object {
	return b.clone
}

// OriginalMaterials returns the graphics object's materials.
func (b *Body) OriginalMaterials() []*material.Material {
	return b.Graphics.Materials
}

// CloneMaterials returns the clone's materials.
func (b *Body) CloneMaterials() []*material.Material {
	return b.clone.Materials
}

// PreviousOffsetFromPortal returns the offset recorded on the last update.
func (b *Body) PreviousOffsetFromPortal() math.Vec3 {
	return b.previousOffset
}

// SetPreviousOffsetFromPortal records the offset from the tracking portal.
func (b *Body) SetPreviousOffsetFromPortal(offset math.Vec3) {
	b.previousOffset = offset
}

// Teleport moves the body and carries its velocity through the portal pair.
func (b *Body) Teleport(from, to *transform.Transform, pos math.Vec3, rot math.Quat) {
	b.Graphics.Transform.SetPositionAndRotation(pos, rot)
	b.Velocity = to.TransformVector(from.InverseTransformVector(b.Velocity))
}

// EnterPortalThreshold shows the clone.
func (b *Body) EnterPortalThreshold() {
	b.clone.Enabled = true
}

// ExitPortalThreshold hides the clone and disables slicing on the original.
func (b *Body) ExitPortalThreshold() {
	b.clone.Enabled = false
	for _, m := range b.Graphics.Materials {
		m.SetVector(material.SliceNormal, math.Vec3{})
	}
}

// Bounds returns the world bounds of the graphics object.
func (b *Body) Bounds() visibility.AABB {
	return b.Graphics.Bounds()
}

// Step advances the body by its velocity.
func (b *Body) Step(dt float64) {
	if b.Velocity == (math.Vec3{}) {
		return
	}
	t := b.Graphics.Transform
	t.SetPositionAndRotation(t.WorldPosition().Add(b.Velocity.Scale(float32(dt))), t.WorldRotation())
}
