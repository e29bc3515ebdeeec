package renderer

import (
	"testing"

	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/pkg/math"
)

func vertexAt(data []float32, i int) (pos, normal math.Vec3) {
	v := data[i*floatsPerVertex:]
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, math.Vec3{X: v[3], Y: v[4], Z: v[5]}
}

func TestCubeVertices(t *testing.T) {
	data := CubeVertices()
	if len(data) != 36*floatsPerVertex {
		t.Fatalf("len = %d, want %d", len(data), 36*floatsPerVertex)
	}
	for i := 0; i < 36; i++ {
		pos, normal := vertexAt(data, i)
		if !math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}.ApproxEqual(pos.Max(pos.Neg()), 1e-6) {
			t.Fatalf("vertex %d at %v is not a cube corner", i, pos)
		}
		if pos.Dot(normal) <= 0 {
			t.Errorf("vertex %d normal %v points inward", i, normal)
		}
	}
}

func TestCubeWindingFacesOutward(t *testing.T) {
	data := CubeVertices()
	for tri := 0; tri < 12; tri++ {
		a, n := vertexAt(data, tri*3)
		b, _ := vertexAt(data, tri*3+1)
		c, _ := vertexAt(data, tri*3+2)
		if b.Sub(a).Cross(c.Sub(a)).Dot(n) <= 0 {
			t.Errorf("triangle %d is wound clockwise", tri)
		}
	}
}

func TestQuadVertices(t *testing.T) {
	data := QuadVertices()
	if len(data) != 6*floatsPerVertex {
		t.Fatalf("len = %d, want %d", len(data), 6*floatsPerVertex)
	}
	for i := 0; i < 6; i++ {
		pos, normal := vertexAt(data, i)
		if pos.Z != 0 || normal != math.Vec3Forward {
			t.Errorf("vertex %d = %v normal %v, want z=0 facing +Z", i, pos, normal)
		}
	}
	if len(meshVertices(scene.MeshQuad)) != len(data) {
		t.Error("MeshQuad should use quad vertices")
	}
}
