package material

import (
	"testing"

	"github.com/Faultbox/portals/pkg/math"
)

type fakeTexture uint32

func (f fakeTexture) TextureID() uint32 { return uint32(f) }

func TestSetters(t *testing.T) {
	m := New("test", ShaderSliced)
	m.SetVector(SliceNormal, math.Vec3{X: 1})
	m.SetFloat(SliceOffsetDst, -0.25)
	m.SetInt(DisplayMask, 1)
	m.SetTexture(MainTex, fakeTexture(7))

	if got := m.Vector(SliceNormal); got != (math.Vec3{X: 1}) {
		t.Errorf("Vector = %v", got)
	}
	if got := m.Float(SliceOffsetDst); got != -0.25 {
		t.Errorf("Float = %v", got)
	}
	if got := m.Int(DisplayMask); got != 1 {
		t.Errorf("Int = %v", got)
	}
	if got := m.Texture(MainTex); got == nil || got.TextureID() != 7 {
		t.Errorf("Texture = %v", got)
	}

	m.SetTexture(MainTex, nil)
	if m.Texture(MainTex) != nil {
		t.Error("SetTexture(nil) should clear the texture")
	}
}

func TestUnsetReturnsZero(t *testing.T) {
	m := New("empty", ShaderPortal)
	if m.Vector(SliceCentre) != (math.Vec3{}) || m.Float(SliceOffsetDst) != 0 || m.Int(DisplayMask) != 0 {
		t.Error("unset parameters should be zero")
	}
}

func TestPortalScreenDefaults(t *testing.T) {
	m := NewPortalScreen("screen", math.Vec3{X: 0.2})
	if m.Shader != ShaderPortal {
		t.Errorf("Shader = %v, want portal", m.Shader)
	}
	if m.Int(DisplayMask) != 1 {
		t.Errorf("displayMask = %d, want 1", m.Int(DisplayMask))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := NewSliced("cube", math.Vec3{X: 1, Y: 0.5})
	orig.SetFloat(SliceOffsetDst, 3)

	c := orig.Clone("cube (clone)")
	c.SetFloat(SliceOffsetDst, -1)
	c.SetVector(Color, math.Vec3{})

	if orig.Float(SliceOffsetDst) != 3 {
		t.Error("clone write leaked into original float")
	}
	if orig.Vector(Color) != (math.Vec3{X: 1, Y: 0.5}) {
		t.Error("clone write leaked into original vector")
	}
	if c.Shader != orig.Shader || c.Name != "cube (clone)" {
		t.Errorf("clone = %+v", c)
	}
}

func TestEach(t *testing.T) {
	m := New("each", ShaderSliced)
	m.SetVector("a", math.Vec3{X: 1})
	m.SetVector("b", math.Vec3{Y: 1})
	m.SetFloat("c", 2)

	vecs := 0
	floats := 0
	m.Each(func(string, math.Vec3) { vecs++ }, func(string, float32) { floats++ }, nil, nil)
	if vecs != 2 || floats != 1 {
		t.Errorf("Each visited %d vectors, %d floats; want 2, 1", vecs, floats)
	}
}
