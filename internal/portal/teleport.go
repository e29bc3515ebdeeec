package portal

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/portals/pkg/math"
)

// OnTravellerEnter starts tracking t. Entering twice is a no-op.
func (p *Portal) OnTravellerEnter(t Traveller) {
	if p.linked == nil || p.IsTracking(t) {
		return
	}
	mustMatchMaterials(t)
	t.EnterPortalThreshold()
	t.SetPreviousOffsetFromPortal(t.Transform().WorldPosition().Sub(p.Transform.WorldPosition()))
	p.tracked = append(p.tracked, t)
	p.log.Debug("traveller entered", zap.Int("tracked", len(p.tracked)))
}

// OnTravellerExit stops tracking t.
func (p *Portal) OnTravellerExit(t Traveller) {
	i := slices.Index(p.tracked, t)
	if i < 0 {
		return
	}
	t.ExitPortalThreshold()
	p.tracked = slices.Delete(p.tracked, i, i+1)
	p.log.Debug("traveller exited", zap.Int("tracked", len(p.tracked)))
}

// IsTracking reports whether t is inside this portal's threshold.
func (p *Portal) IsTracking(t Traveller) bool {
	return slices.Contains(p.tracked, t)
}

// Tracked returns the travellers currently tracked, in entry order.
func (p *Portal) Tracked() []Traveller {
	return slices.Clone(p.tracked)
}

// receive takes over a traveller that just teleported out of the linked
// portal. Its offset is recorded against this portal even if it was
// already tracked here.
func (p *Portal) receive(t Traveller) {
	if p.IsTracking(t) {
		t.SetPreviousOffsetFromPortal(t.Transform().WorldPosition().Sub(p.Transform.WorldPosition()))
		return
	}
	p.OnTravellerEnter(t)
}

// Update teleports every tracked traveller that crossed the portal plane
// since the last call, and moves the clones of the rest to the mirrored pose
// at the linked portal. A traveller exactly on the plane neither teleports
// nor overwrites its recorded offset.
func (p *Portal) Update() {
	if p.linked == nil {
		return
	}
	portalToLinked := p.linked.Transform.LocalToWorld().Mul(p.Transform.WorldToLocal())
	portalPos := p.Transform.WorldPosition()
	forward := p.Transform.Forward()

	for i := 0; i < len(p.tracked); i++ {
		t := p.tracked[i]
		tr := t.Transform()
		m := portalToLinked.Mul(tr.LocalToWorld())

		offset := tr.WorldPosition().Sub(portalPos)
		side := math.Sign(offset.Dot(forward))
		sideOld := math.Sign(t.PreviousOffsetFromPortal().Dot(forward))

		if side != 0 && sideOld != 0 && side != sideOld {
			posOld, rotOld := tr.WorldPosition(), tr.WorldRotation()
			t.Teleport(p.Transform, p.linked.Transform, m.Translation(), m.Rotation())
			if clone := t.GraphicsClone(); clone != nil {
				clone.Transform.SetPositionAndRotation(posOld, rotOld)
			}

			p.tracked = slices.Delete(p.tracked, i, i+1)
			i--
			p.linked.receive(t)
			p.log.Debug("traveller teleported",
				zap.String("to", p.linked.Name),
				zap.Float32("x", tr.WorldPosition().X),
				zap.Float32("y", tr.WorldPosition().Y),
				zap.Float32("z", tr.WorldPosition().Z))
			continue
		}

		if clone := t.GraphicsClone(); clone != nil {
			clone.Transform.SetPositionAndRotation(m.Translation(), m.Rotation())
		}
		if side != 0 {
			t.SetPreviousOffsetFromPortal(offset)
		}
	}
}
