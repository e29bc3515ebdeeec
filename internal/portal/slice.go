package portal

import (
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/pkg/math"
)

// SliceParams is the clipping plane a sliced material discards against.
type SliceParams struct {
	Centre    math.Vec3
	Normal    math.Vec3
	OffsetDst float32
}

func (s SliceParams) apply(m *material.Material) {
	m.SetVector(material.SliceCentre, s.Centre)
	m.SetVector(material.SliceNormal, s.Normal)
	m.SetFloat(material.SliceOffsetDst, s.OffsetDst)
}

// SliceParams returns the slice planes for t's original graphics (at this
// portal) and for its clone (at the linked portal). Each half keeps only the
// part on the traveller's own side of its portal. When the player views a
// half from the other side, its plane is pulled back by the screen
// thickness so the half stays visible inside the thickened screen.
func (p *Portal) SliceParams(t Traveller) (original, clone SliceParams) {
	travellerPos := t.Transform().WorldPosition()
	side := p.SideOfPortal(travellerPos)
	thickness := p.Screen.Transform.Scale.Z
	playerPos := p.playerCam.Position()

	original = SliceParams{
		Centre: p.Transform.WorldPosition(),
		Normal: p.Transform.Forward().Scale(float32(-side)),
	}
	clone = SliceParams{
		Centre: p.linked.Transform.WorldPosition(),
		Normal: p.linked.Transform.Forward().Scale(float32(side)),
	}

	if !p.SameSideOfPortal(playerPos, travellerPos) {
		original.OffsetDst = -thickness
	}
	if side == p.linked.SideOfPortal(playerPos) {
		clone.OffsetDst = -thickness
	}
	return original, clone
}

// updateSliceParams pushes the slice planes into t's materials.
func (p *Portal) updateSliceParams(t Traveller) {
	mustMatchMaterials(t)
	original, clone := p.SliceParams(t)
	origMats, cloneMats := t.OriginalMaterials(), t.CloneMaterials()
	for i := range origMats {
		original.apply(origMats[i])
		clone.apply(cloneMats[i])
	}
}
