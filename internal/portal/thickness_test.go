package portal

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/pkg/math"
)

func TestScreenThickness(t *testing.T) {
	tests := []struct {
		name   string
		fov    float32
		aspect float32
		near   float32
		want   float32
	}{
		{"square 90 degrees", 90, 1, 1, float32(gomath.Sqrt(3))},
		{"wide", 90, 2, 0.5, float32(gomath.Sqrt(1 + 0.25 + 0.25))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := camera.New(tt.fov, tt.aspect, tt.near, 100)
			if got := ScreenThickness(cam); !approx(got, tt.want) {
				t.Errorf("ScreenThickness = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestProtectScreenFromClipping(t *testing.T) {
	f := newFixture()
	thickness := ScreenThickness(f.player)

	tests := []struct {
		name      string
		viewPoint math.Vec3
		wantZ     float32
	}{
		{"viewer behind portal", math.Vec3{X: -2}, thickness / 2},
		{"viewer in front of portal", math.Vec3{X: 2, Y: 1}, -thickness / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.a.ProtectScreenFromClipping(tt.viewPoint)
			if !approx(got, thickness) {
				t.Errorf("thickness = %f, want %f", got, thickness)
			}
			screen := f.a.Screen.Transform
			if !approx(screen.Scale.Z, thickness) {
				t.Errorf("scale z = %f, want %f", screen.Scale.Z, thickness)
			}
			if screen.Scale.X != 2 || screen.Scale.Y != 3 {
				t.Errorf("width and height should be untouched, got %v", screen.Scale)
			}
			if !screen.Position.ApproxEqual(math.Vec3{Z: tt.wantZ}, eps) {
				t.Errorf("local position = %v, want (0, 0, %f)", screen.Position, tt.wantZ)
			}
			// Local +Z is the portal normal, world +X
			if got := screen.WorldPosition(); !got.ApproxEqual(math.Vec3{X: tt.wantZ}, eps) {
				t.Errorf("world position = %v, want (%f, 0, 0)", got, tt.wantZ)
			}
		})
	}
}

func TestProtectScreenFlipsWhenViewerCrosses(t *testing.T) {
	f := newFixture()
	f.a.ProtectScreenFromClipping(math.Vec3{X: -0.01})
	before := f.a.Screen.Transform.Position.Z
	f.a.ProtectScreenFromClipping(math.Vec3{X: 0.01})
	after := f.a.Screen.Transform.Position.Z
	if before <= 0 || after >= 0 || !approx(before, -after) {
		t.Errorf("offset should flip sign across the plane: %f then %f", before, after)
	}
}

func TestPostPortalRenderProtectsAgainstPlayer(t *testing.T) {
	f := newFixture()
	f.placePlayer(math.Vec3{X: 12}, math.QuatIdentity())
	f.b.PostPortalRender()

	want := -ScreenThickness(f.player) / 2
	if got := f.b.Screen.Transform.Position.Z; !approx(got, want) {
		t.Errorf("B screen offset = %f, want %f", got, want)
	}
}
