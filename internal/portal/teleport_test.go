package portal

import (
	"testing"

	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/pkg/math"
)

// stubTraveller counts threshold callbacks and teleports.
type stubTraveller struct {
	tr        *transform.Transform
	orig      []*material.Material
	clones    []*material.Material
	offset    math.Vec3
	enters    int
	exits     int
	teleports int
}

func newStub(pos math.Vec3) *stubTraveller {
	return &stubTraveller{tr: transform.NewAt(pos, math.QuatIdentity())}
}

func (s *stubTraveller) Transform() *transform.Transform              { return s.tr }
func (s *stubTraveller) GraphicsClone() *scene.Object                 { return nil }
func (s *stubTraveller) OriginalMaterials() []*material.Material      { return s.orig }
func (s *stubTraveller) CloneMaterials() []*material.Material         { return s.clones }
func (s *stubTraveller) PreviousOffsetFromPortal() math.Vec3          { return s.offset }
func (s *stubTraveller) SetPreviousOffsetFromPortal(offset math.Vec3) { s.offset = offset }
func (s *stubTraveller) EnterPortalThreshold()                        { s.enters++ }
func (s *stubTraveller) ExitPortalThreshold()                         { s.exits++ }

func (s *stubTraveller) Teleport(_, _ *transform.Transform, pos math.Vec3, rot math.Quat) {
	s.teleports++
	s.tr.SetPositionAndRotation(pos, rot)
}

func TestTeleportEndToEnd(t *testing.T) {
	f := newFixture()
	crate := newCrate(math.Vec3{X: -0.5})
	f.a.OnTravellerEnter(crate)

	f.a.Update()
	if got := crate.Graphics.Transform.WorldPosition(); !got.ApproxEqual(math.Vec3{X: -0.5}, eps) {
		t.Fatalf("crate moved before crossing: %v", got)
	}
	if got := crate.GraphicsClone().Transform.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 9.5}, eps) {
		t.Errorf("clone position = %v, want (9.5, 0, 0)", got)
	}

	crate.Graphics.Transform.Position = math.Vec3{X: 0.5}
	f.a.Update()

	if got := crate.Graphics.Transform.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 10.5}, eps) {
		t.Errorf("position after crossing = %v, want (10.5, 0, 0)", got)
	}
	if !crate.Graphics.Transform.WorldRotation().SameRotation(math.QuatIdentity(), eps) {
		t.Error("rotation should be unchanged between parallel portals")
	}
	if got := crate.GraphicsClone().Transform.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 0.5}, eps) {
		t.Errorf("clone should take the pre-teleport pose, got %v", got)
	}
	if f.a.IsTracking(crate) {
		t.Error("A should stop tracking after teleport")
	}
	if !f.b.IsTracking(crate) {
		t.Fatal("B should track after teleport")
	}
	if got := crate.PreviousOffsetFromPortal(); !got.ApproxEqual(math.Vec3{X: 0.5}, eps) {
		t.Errorf("offset after teleport = %v, want (0.5, 0, 0) relative to B", got)
	}
}

func TestTeleportHappensOnce(t *testing.T) {
	f := newFixture()
	crate := newCrate(math.Vec3{X: -0.5})
	f.a.OnTravellerEnter(crate)
	crate.Graphics.Transform.Position = math.Vec3{X: 0.5}

	for n := 0; n < 5; n++ {
		f.a.Update()
		f.b.Update()
	}
	if got := crate.Graphics.Transform.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 10.5}, eps) {
		t.Errorf("position = %v, want a single teleport to (10.5, 0, 0)", got)
	}
}

func TestTeleportMapsPoseBetweenRotatedPortals(t *testing.T) {
	f := newFixture()
	// B faces +Z at (10, 0, 0)
	Link(f.a, nil)
	b := f.newPortal("B2", math.Vec3{X: 10}, math.QuatIdentity())
	Link(f.a, b)

	crate := newCrate(math.Vec3{X: -0.5, Y: 1})
	crate.Velocity = math.Vec3{X: 2}
	f.a.OnTravellerEnter(crate)

	crate.Graphics.Transform.Position = math.Vec3{X: 0.5, Y: 1}
	f.a.Update()

	tr := crate.Graphics.Transform
	if got := tr.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 10, Y: 1, Z: 0.5}, eps) {
		t.Errorf("position = %v, want (10, 1, 0.5)", got)
	}
	if got := tr.Forward(); !got.ApproxEqual(math.Vec3{X: -1}, eps) {
		t.Errorf("forward = %v, want (-1, 0, 0)", got)
	}
	if !crate.Velocity.ApproxEqual(math.Vec3{Z: 2}, eps) {
		t.Errorf("velocity = %v, want (0, 0, 2)", crate.Velocity)
	}
}

func TestCloneMirrorsPoseWithoutCrossing(t *testing.T) {
	f := newFixture()
	rot := math.QuatFromEuler(10, 30, 0)
	crate := newCrate(math.Vec3{X: -1, Y: 2, Z: 0.5})
	crate.Graphics.Transform.Rotation = rot
	f.a.OnTravellerEnter(crate)

	f.a.Update()
	clone := crate.GraphicsClone().Transform
	if got := clone.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 9, Y: 2, Z: 0.5}, eps) {
		t.Errorf("clone position = %v, want (9, 2, 0.5)", got)
	}
	if !clone.WorldRotation().SameRotation(rot, eps) {
		t.Errorf("clone rotation = %v, want %v", clone.WorldRotation(), rot)
	}
}

func TestEnterIsIdempotent(t *testing.T) {
	f := newFixture()
	s := newStub(math.Vec3{X: -1})
	f.a.OnTravellerEnter(s)
	s.offset = math.Vec3{X: -0.7}
	f.a.OnTravellerEnter(s)

	if len(f.a.Tracked()) != 1 {
		t.Errorf("tracked = %d, want 1", len(f.a.Tracked()))
	}
	if s.enters != 1 {
		t.Errorf("EnterPortalThreshold called %d times, want 1", s.enters)
	}
	if !s.offset.ApproxEqual(math.Vec3{X: -0.7}, eps) {
		t.Error("second enter should not reset the recorded offset")
	}

	f.a.OnTravellerExit(s)
	f.a.OnTravellerExit(s)
	if s.exits != 1 || len(f.a.Tracked()) != 0 {
		t.Errorf("exits = %d tracked = %d, want 1 and 0", s.exits, len(f.a.Tracked()))
	}
}

func TestOnPlaneKeepsPreviousOffset(t *testing.T) {
	f := newFixture()
	s := newStub(math.Vec3{X: -0.5})
	f.a.OnTravellerEnter(s)

	s.tr.Position = math.Vec3{Y: 1}
	f.a.Update()
	if s.teleports != 0 {
		t.Fatal("traveller on the plane should not teleport")
	}
	if !s.offset.ApproxEqual(math.Vec3{X: -0.5}, eps) {
		t.Errorf("offset = %v, want previous (-0.5, 0, 0)", s.offset)
	}

	s.tr.Position = math.Vec3{X: 0.5}
	f.a.Update()
	if s.teleports != 1 {
		t.Errorf("teleports = %d, want 1 after leaving the plane on the far side", s.teleports)
	}
}

func TestEnteringOnPlaneDoesNotTeleport(t *testing.T) {
	f := newFixture()
	s := newStub(math.Vec3{Z: 0.3})
	f.a.OnTravellerEnter(s)

	s.tr.Position = math.Vec3{X: 0.5}
	f.a.Update()
	if s.teleports != 0 {
		t.Fatal("no recorded side means no crossing")
	}
	if !s.offset.ApproxEqual(math.Vec3{X: 0.5}, eps) {
		t.Errorf("offset = %v, want (0.5, 0, 0)", s.offset)
	}

	s.tr.Position = math.Vec3{X: -0.5}
	f.a.Update()
	if s.teleports != 1 {
		t.Errorf("teleports = %d, want 1", s.teleports)
	}
	if got := s.tr.WorldPosition(); !got.ApproxEqual(math.Vec3{X: 9.5}, eps) {
		t.Errorf("position = %v, want (9.5, 0, 0)", got)
	}
}

func TestTeleportRefreshesOffsetWhenAlreadyTracked(t *testing.T) {
	f := newFixture()
	s := newStub(math.Vec3{X: -0.5})
	f.a.OnTravellerEnter(s)
	f.b.OnTravellerEnter(s)

	s.tr.Position = math.Vec3{X: 0.5}
	f.a.Update()
	if s.teleports != 1 {
		t.Fatalf("teleports = %d, want 1", s.teleports)
	}
	if s.enters != 2 {
		t.Errorf("enters = %d, want 2", s.enters)
	}

	f.b.Update()
	if s.teleports != 1 {
		t.Error("B should not bounce the traveller back using a stale offset")
	}
}

func TestMismatchedMaterialsPanic(t *testing.T) {
	f := newFixture()
	s := newStub(math.Vec3{X: -1})
	s.orig = []*material.Material{material.NewSliced("a", math.Vec3One)}

	defer func() {
		if recover() == nil {
			t.Error("mismatched material lists should panic")
		}
	}()
	f.a.OnTravellerEnter(s)
}

func TestBodyThreshold(t *testing.T) {
	crate := newCrate(math.Vec3{})
	if crate.GraphicsClone().Enabled {
		t.Fatal("clone should start disabled")
	}
	if len(crate.CloneMaterials()) != len(crate.OriginalMaterials()) {
		t.Fatal("clone should carry one material per original")
	}
	if crate.CloneMaterials()[0] == crate.OriginalMaterials()[0] {
		t.Error("clone materials should be copies")
	}

	crate.EnterPortalThreshold()
	if !crate.GraphicsClone().Enabled {
		t.Error("enter should show the clone")
	}

	crate.OriginalMaterials()[0].SetVector(material.SliceNormal, math.Vec3{X: 1})
	crate.ExitPortalThreshold()
	if crate.GraphicsClone().Enabled {
		t.Error("exit should hide the clone")
	}
	if n := crate.OriginalMaterials()[0].Vector(material.SliceNormal); n != (math.Vec3{}) {
		t.Errorf("slice normal after exit = %v, want zero", n)
	}
}

func TestBodyStep(t *testing.T) {
	crate := newCrate(math.Vec3{X: 1})
	crate.Velocity = math.Vec3{Y: 2}
	crate.Step(0.5)
	if got := crate.Transform().WorldPosition(); !got.ApproxEqual(math.Vec3{X: 1, Y: 1}, eps) {
		t.Errorf("position = %v, want (1, 1, 0)", got)
	}
}

func TestSlidingAlongPlaneDoesNotTeleport(t *testing.T) {
	f := newFixture()
	s := newStub(math.Vec3{Y: 1, Z: -3})
	f.a.OnTravellerEnter(s)

	for _, z := range []float32{-1, 0.5, 3} {
		s.tr.Position = math.Vec3{Y: 1, Z: z}
		f.a.Update()
	}

	if s.teleports != 0 {
		t.Errorf("teleports = %d, want 0, position %v", s.teleports, s.tr.WorldPosition())
	}
	if !f.a.IsTracking(s) {
		t.Error("A should still track the traveller")
	}

	// Leaving the plane and crossing it afterwards still teleports
	s.tr.Position = math.Vec3{X: -0.2, Z: 3}
	f.a.Update()
	s.tr.Position = math.Vec3{X: 0.2, Z: 3}
	f.a.Update()
	if s.teleports != 1 {
		t.Errorf("teleports after crossing = %d, want 1", s.teleports)
	}
}
