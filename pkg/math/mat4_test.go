package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// Transform eye position - should result in origin (or close to it)
	// This is a simple sanity check
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approxMat(a, b Mat4, eps float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestPerspectiveMatchesMathgl(t *testing.T) {
	fov := float32(math.Pi / 3)
	got := Perspective(fov, 16.0/9.0, 0.3, 1000)
	want := mgl32.Perspective(fov, 16.0/9.0, 0.3, 1000)
	if !approxMat(got, Mat4(want), 1e-4) {
		t.Errorf("Perspective = %v, mathgl = %v", got, want)
	}
}

func TestInverseMatchesMathgl(t *testing.T) {
	m := TRS(Vec3{3, -2, 7}, QuatFromEuler(10, 75, -30), Vec3{1, 2, 0.5})
	got := m.Inverse()
	want := mgl32.Mat4(m).Inv()
	if !approxMat(got, Mat4(want), 1e-4) {
		t.Errorf("Inverse = %v, mathgl = %v", got, want)
	}

	id := m.Mul(got)
	if !approxMat(id, Identity(), 1e-4) {
		t.Errorf("M * M^-1 = %v, want identity", id)
	}
}

func TestTRSMatchesComposition(t *testing.T) {
	pos := Vec3{1, 2, 3}
	rot := QuatFromAxisAngle(Vec3Up, float32(math.Pi/2))
	scale := Vec3{2, 2, 2}

	got := TRS(pos, rot, scale)
	want := Translate(1, 2, 3).Mul(RotateY(float32(math.Pi / 2))).Mul(Scale(2, 2, 2))
	if !approxMat(got, want, 1e-5) {
		t.Errorf("TRS = %v, want %v", got, want)
	}

	if got.Translation() != pos {
		t.Errorf("Translation() = %v, want %v", got.Translation(), pos)
	}
	if !got.Rotation().SameRotation(rot, 1e-5) {
		t.Errorf("Rotation() = %v, want %v", got.Rotation(), rot)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(RotateY(float32(math.Pi / 2)))
	got := m.TransformDirection(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("TransformDirection = %v, want (0, 0, -1)", got)
	}
}

func TestColumn(t *testing.T) {
	m := Translate(4, 5, 6)
	if c := m.Column(3); c != (Vec4{4, 5, 6, 1}) {
		t.Errorf("Column(3) = %v, want (4, 5, 6, 1)", c)
	}
}

// ndcDepth projects a camera-space point and returns its NDC z.
func ndcDepth(proj Mat4, p Vec3) float32 {
	clip := proj.MulVec4(p.Vec4(1))
	return clip[2] / clip[3]
}

func TestObliqueProjectionClipsAtPlane(t *testing.T) {
	proj := Perspective(float32(math.Pi/3), 1, 0.1, 100)

	// Plane z = -5 facing away from the camera at the origin.
	plane := Vec4{0, 0, -1, -5}
	oblique := ObliqueProjection(proj, plane)

	if d := ndcDepth(oblique, Vec3{0, 0, -10}); d < -1 || d > 1 {
		t.Errorf("point beyond plane: ndc z = %f, want within [-1, 1]", d)
	}
	if d := ndcDepth(oblique, Vec3{0, 0, -5}); abs(d+1) > 1e-3 {
		t.Errorf("point on plane: ndc z = %f, want -1", d)
	}
	if d := ndcDepth(oblique, Vec3{0, 0, -3}); d >= -1 {
		t.Errorf("point before plane: ndc z = %f, want < -1", d)
	}
	if d := ndcDepth(oblique, Vec3{1, 1, -4}); d >= -1 {
		t.Errorf("off-axis point before plane: ndc z = %f, want < -1", d)
	}
}

func TestObliqueProjectionKeepsXY(t *testing.T) {
	proj := Perspective(float32(math.Pi/4), 1.5, 0.3, 500)
	oblique := ObliqueProjection(proj, Vec4{0.2, 0.1, -1, -3})

	// Only the third row changes.
	for _, i := range []int{0, 1, 3, 4, 5, 7, 8, 9, 11, 12, 13, 15} {
		if oblique[i] != proj[i] {
			t.Errorf("element %d changed: got %f, want %f", i, oblique[i], proj[i])
		}
	}
}
