package world

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/portals/internal/config"
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/portal"
	"github.com/Faultbox/portals/pkg/math"
)

type nopTexture struct{ w, h int32 }

func (t *nopTexture) TextureID() uint32     { return 1 }
func (t *nopTexture) Size() (int32, int32) { return t.w, t.h }
func (t *nopTexture) Release()             {}

type nopRenderer struct{ renders int }

func (r *nopRenderer) ViewportSize() (int32, int32) { return 320, 240 }

func (r *nopRenderer) NewRenderTexture(w, h int32) (portal.RenderTexture, error) {
	return &nopTexture{w: w, h: h}, nil
}

func (r *nopRenderer) RenderToTexture(*camera.Camera, portal.RenderTexture) error {
	r.renders++
	return nil
}

func newTestWorld(t *testing.T, cfg *config.Config) (*World, *nopRenderer) {
	t.Helper()
	r := &nopRenderer{}
	cam := camera.New(cfg.Camera.FOV, 4.0/3.0, cfg.Camera.Near, cfg.Camera.Far)
	w, err := New(cfg, scene.New(), cam, r)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(w.Close)
	return w, r
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestNewDefaultScene(t *testing.T) {
	w, _ := newTestWorld(t, config.Default())

	// floor, two pillars, two screens, crate and its clone
	if got := len(w.Scene.Objects()); got != 7 {
		t.Errorf("objects = %d, want 7", got)
	}
	if got := len(w.Portals.Portals()); got != 2 {
		t.Fatalf("portals = %d, want 2", got)
	}
	if got := len(w.TriggerBoxes()); got != 2 {
		t.Errorf("trigger boxes = %d, want 2", got)
	}

	blue, orange := w.Portals.Find("blue"), w.Portals.Find("orange")
	if blue.Linked() != orange || orange.Linked() != blue {
		t.Error("blue and orange should be linked to each other")
	}

	pos := w.Player.Camera().Position()
	if !pos.ApproxEqual(math.Vec3{X: 0, Y: 1.6, Z: 6}, 1e-5) {
		t.Errorf("player position = %v", pos)
	}

	if clone := w.Bodies[0].GraphicsClone(); clone.Enabled {
		t.Error("clone should start disabled")
	}
}

func TestNewUnknownLink(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Portals[0].Link = "green"
	cam := camera.New(60, 1, 0.1, 100)
	if _, err := New(cfg, scene.New(), cam, &nopRenderer{}); err == nil {
		t.Error("New() should fail on an unknown link")
	}
}

func TestTriggerBoxesCoverScreens(t *testing.T) {
	w, _ := newTestWorld(t, config.Default())
	boxes := w.TriggerBoxes()
	for i, p := range w.Portals.Portals() {
		if !boxes[i].Contains(p.Transform.WorldPosition()) {
			t.Errorf("trigger box for %s does not contain the portal", p.Name)
		}
	}
}

func TestCrateLoopsThroughPortals(t *testing.T) {
	w, _ := newTestWorld(t, config.Default())
	crate := w.Bodies[0]

	// 4s at 1.5u/s: 5 units to orange, then 1 unit out of blue
	for n := 0; n < 240; n++ {
		w.Step(1.0 / 60)
	}

	pos := crate.Transform().WorldPosition()
	if gomath.Abs(float64(pos.X+4)) > 0.05 {
		t.Errorf("crate x = %v, want about -4", pos.X)
	}
	if !near(pos.Y, 0.5) || !near(pos.Z, 0) {
		t.Errorf("crate left its lane: %v", pos)
	}
	if !crate.Velocity.ApproxEqual(math.Vec3{X: 1.5}, 1e-4) {
		t.Errorf("velocity = %v, want unchanged", crate.Velocity)
	}
}

func TestPlayerWalksThroughPortal(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Travellers = nil
	cfg.Scene.Player = config.PlayerLayout{Position: [3]float32{-4.9, 1.6, 0}, Yaw: 90}
	w, _ := newTestWorld(t, cfg)

	blue := w.Portals.Find("blue")
	w.Step(1.0 / 60)
	if !blue.IsTracking(w.Player) {
		t.Fatal("blue should track the player at its threshold")
	}

	// Yaw 90 looks down -X, straight through blue
	w.Player.Controller.HandleMovement(1, 0, 0, 0.05)
	w.Step(1.0 / 60)

	pos := w.Player.Camera().Position()
	if !near(pos.X, 4.9) {
		t.Errorf("player x = %v, want 4.9", pos.X)
	}
	if !near(w.Player.Controller.Yaw, math.Deg2Rad(90)) {
		t.Errorf("yaw = %v, want 90 degrees", w.Player.Controller.Yaw)
	}
	if blue.IsTracking(w.Player) {
		t.Error("blue should hand the player over")
	}
	if !w.Portals.Find("orange").IsTracking(w.Player) {
		t.Error("orange should track the player after the teleport")
	}
}

func TestRenderPortalsVisible(t *testing.T) {
	cfg := config.Default()
	cfg.Portal.RecursionLimit = 1
	cfg.Scene.Player = config.PlayerLayout{Position: [3]float32{0, 1.5, 0}, Yaw: -90}
	w, r := newTestWorld(t, cfg)

	// Looking down +X only orange is in view
	if err := w.RenderPortals(); err != nil {
		t.Fatalf("RenderPortals() error = %v", err)
	}
	if r.renders != 1 {
		t.Errorf("renders = %d, want 1", r.renders)
	}
}

func TestAimAtPortal(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Player = config.PlayerLayout{Position: [3]float32{0, 1.5, 0}, Yaw: -90}
	w, _ := newTestWorld(t, cfg)

	hit, p, ok := w.Aim()
	if !ok {
		t.Fatal("Aim() should hit the orange screen")
	}
	if p == nil || p.Name != "orange" {
		t.Fatalf("aimed portal = %v, want orange", p)
	}
	if hit.Distance < 4.5 || hit.Distance > 5 {
		t.Errorf("distance = %v, want just under 5", hit.Distance)
	}
}
