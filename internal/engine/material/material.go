// Package material holds named shader parameters for a renderable.
package material

import (
	"github.com/Faultbox/portals/pkg/math"
)

// Parameter names shared with the GLSL sources.
const (
	SliceCentre    = "sliceCentre"
	SliceNormal    = "sliceNormal"
	SliceOffsetDst = "sliceOffsetDst"
	MainTex        = "_MainTex"
	DisplayMask    = "displayMask"
	Color          = "_Color"
)

// ShaderKind selects the program a material is drawn with.
type ShaderKind int

const (
	// ShaderSliced is the lit shader that discards fragments behind the slice plane.
	ShaderSliced ShaderKind = iota
	// ShaderPortal samples _MainTex in screen space.
	ShaderPortal
)

// String returns the shader kind name.
func (k ShaderKind) String() string {
	switch k {
	case ShaderSliced:
		return "sliced"
	case ShaderPortal:
		return "portal"
	default:
		return "unknown"
	}
}

// Texture is a GPU texture handle.
type Texture interface {
	TextureID() uint32
}

// Material is a set of named parameters bound to one shader.
type Material struct {
	Name   string
	Shader ShaderKind

	vectors  map[string]math.Vec3
	floats   map[string]float32
	ints     map[string]int32
	textures map[string]Texture
}

// New creates an empty material.
func New(name string, shader ShaderKind) *Material {
	return &Material{
		Name:     name,
		Shader:   shader,
		vectors:  make(map[string]math.Vec3),
		floats:   make(map[string]float32),
		ints:     make(map[string]int32),
		textures: make(map[string]Texture),
	}
}

// NewSliced creates a sliced material with the given base color.
func NewSliced(name string, color math.Vec3) *Material {
	m := New(name, ShaderSliced)
	m.SetVector(Color, color)
	return m
}

// NewPortalScreen creates a portal screen material. displayMask starts at 1.
func NewPortalScreen(name string, fallback math.Vec3) *Material {
	m := New(name, ShaderPortal)
	m.SetVector(Color, fallback)
	m.SetInt(DisplayMask, 1)
	return m
}

// SetVector sets a vector parameter.
func (m *Material) SetVector(name string, v math.Vec3) {
	m.vectors[name] = v
}

// SetFloat sets a float parameter.
func (m *Material) SetFloat(name string, f float32) {
	m.floats[name] = f
}

// SetInt sets an integer parameter.
func (m *Material) SetInt(name string, i int32) {
	m.ints[name] = i
}

// SetTexture sets a texture parameter. A nil texture clears it.
func (m *Material) SetTexture(name string, tex Texture) {
	if tex == nil {
		delete(m.textures, name)
		return
	}
	m.textures[name] = tex
}

// Vector returns a vector parameter (zero if unset).
func (m *Material) Vector(name string) math.Vec3 {
	return m.vectors[name]
}

// Float returns a float parameter (zero if unset).
func (m *Material) Float(name string) float32 {
	return m.floats[name]
}

// Int returns an integer parameter (zero if unset).
func (m *Material) Int(name string) int32 {
	return m.ints[name]
}

// Texture returns a texture parameter, or nil.
func (m *Material) Texture(name string) Texture {
	return m.textures[name]
}

// Each calls the given functions for every parameter, in no particular order.
// Nil callbacks are skipped.
func (m *Material) Each(vec func(string, math.Vec3), flt func(string, float32), in func(string, int32), tex func(string, Texture)) {
	if vec != nil {
		for k, v := range m.vectors {
			vec(k, v)
		}
	}
	if flt != nil {
		for k, v := range m.floats {
			flt(k, v)
		}
	}
	if in != nil {
		for k, v := range m.ints {
			in(k, v)
		}
	}
	if tex != nil {
		for k, v := range m.textures {
			tex(k, v)
		}
	}
}

// Clone returns a deep copy. Textures are shared handles.
func (m *Material) Clone(name string) *Material {
	c := New(name, m.Shader)
	for k, v := range m.vectors {
		c.vectors[k] = v
	}
	for k, v := range m.floats {
		c.floats[k] = v
	}
	for k, v := range m.ints {
		c.ints[k] = v
	}
	for k, v := range m.textures {
		c.textures[k] = v
	}
	return c
}
