package picking

import (
	"testing"

	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := visibility.AABB{
		Min: math.Vec3{X: -1, Y: -1, Z: -1},
		Max: math.Vec3{X: 1, Y: 1, Z: 1},
	}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"head on", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, 4, true},
		{"from inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, 1, true},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, 0, false},
		{"parallel outside", Ray{Origin: math.Vec3{Y: 2, Z: 5}, Direction: math.Vec3{Z: -1}}, 0, false},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{X: 0.1, Z: -1}.Normalize()}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && math.Abs(got-tt.wantT) > 1e-5 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestCenterRay(t *testing.T) {
	cam := camera.New(60, 4.0/3.0, 0.1, 100)
	cam.Transform.SetPositionAndRotation(math.Vec3{X: 1, Y: 2, Z: 3}, math.QuatIdentity())

	r := CenterRay(cam)
	if !r.Direction.ApproxEqual(math.Vec3{Z: -1}, 1e-4) {
		t.Errorf("direction = %v, want -Z", r.Direction)
	}
	if !r.Origin.ApproxEqual(math.Vec3{X: 1, Y: 2, Z: 2.9}, 1e-3) {
		t.Errorf("origin = %v, want on the near plane", r.Origin)
	}
	if p := r.At(0.9); !p.ApproxEqual(math.Vec3{X: 1, Y: 2, Z: 2}, 1e-3) {
		t.Errorf("At(0.9) = %v", p)
	}
}

func TestNearest(t *testing.T) {
	sc := scene.New()
	mat := material.NewSliced("m", math.Vec3One)
	near := scene.NewObject("near", scene.MeshCube, mat)
	near.Transform.Position = math.Vec3{Z: -3}
	far := scene.NewObject("far", scene.MeshCube, mat)
	far.Transform.Position = math.Vec3{Z: -6}
	hidden := scene.NewObject("hidden", scene.MeshCube, mat)
	hidden.Transform.Position = math.Vec3{Z: -1}
	hidden.Enabled = false
	sc.Add(far, hidden, near)

	r := Ray{Direction: math.Vec3{Z: -1}}

	hit, ok := Nearest(r, sc, nil)
	if !ok || hit.Object != near {
		t.Fatalf("Nearest() = %v, %v, want near", hit.Object, ok)
	}
	if math.Abs(hit.Distance-2.5) > 1e-5 {
		t.Errorf("distance = %v, want 2.5", hit.Distance)
	}

	hit, ok = Nearest(r, sc, func(o *scene.Object) bool { return o == near })
	if !ok || hit.Object != far {
		t.Errorf("Nearest() with skip = %v, want far", hit.Object)
	}

	if _, ok := Nearest(Ray{Direction: math.Vec3{Z: 1}}, sc, nil); ok {
		t.Error("Nearest() behind the ray should miss")
	}
}
