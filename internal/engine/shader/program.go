package shader

import (
	"cmp"
	"slices"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/pkg/math"
)

// Program is a linked shader program with cached uniform locations.
type Program struct {
	ID uint32

	lookup    func(name string) int32
	locations map[string]int32
}

// NewProgram compiles and links a program.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	p := newProgram(id, func(name string) int32 { return uniformLocation(id, name) })
	return p, nil
}

func newProgram(id uint32, lookup func(string) int32) *Program {
	return &Program{
		ID:        id,
		lookup:    lookup,
		locations: make(map[string]int32),
	}
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the location of name, -1 if the program does not use it.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.lookup(name)
	p.locations[name] = loc
	return loc
}

// SetMat4 uploads a matrix uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetVec3 uploads a vector uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, f float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, f)
	}
}

// SetInt uploads an integer uniform.
func (p *Program) SetInt(name string, i int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, i)
	}
}

// ApplyMaterial uploads every parameter of m. Textures are bound to
// consecutive units in name order.
func (p *Program) ApplyMaterial(m *material.Material) {
	m.Each(p.SetVec3, p.SetFloat, p.SetInt, nil)
	for _, b := range TextureBindings(m) {
		gl.ActiveTexture(gl.TEXTURE0 + b.Unit)
		gl.BindTexture(gl.TEXTURE_2D, b.Texture)
		p.SetInt(b.Name, int32(b.Unit))
	}
}

// Delete frees the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// TextureBinding assigns a sampler uniform to a texture unit.
type TextureBinding struct {
	Name    string
	Unit    uint32
	Texture uint32
}

// TextureBindings returns m's textures sorted by parameter name, one unit each.
func TextureBindings(m *material.Material) []TextureBinding {
	var out []TextureBinding
	m.Each(nil, nil, nil, func(name string, tex material.Texture) {
		out = append(out, TextureBinding{Name: name, Texture: tex.TextureID()})
	})
	slices.SortFunc(out, func(a, b TextureBinding) int { return cmp.Compare(a.Name, b.Name) })
	for i := range out {
		out[i].Unit = uint32(i)
	}
	return out
}
