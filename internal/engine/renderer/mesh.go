package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/portals/internal/engine/scene"
)

// floatsPerVertex is position (3) + normal (3) + texcoord (2).
const floatsPerVertex = 8

// cubeFace is one face of the unit cube: its normal and two in-plane axes.
type cubeFace struct {
	normal, u, v [3]float32
}

var cubeFaces = [6]cubeFace{
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// CubeVertices returns 36 interleaved vertices of a unit cube centered on
// the origin, counter-clockwise when seen from outside.
func CubeVertices() []float32 {
	out := make([]float32, 0, 36*floatsPerVertex)
	for _, f := range cubeFaces {
		out = appendFace(out, f.normal, f.u, f.v, 0.5)
	}
	return out
}

// QuadVertices returns 6 interleaved vertices of a unit quad in the XY
// plane facing +Z.
func QuadVertices() []float32 {
	f := cubeFaces[4]
	return appendFace(nil, f.normal, f.u, f.v, 0)
}

func appendFace(out []float32, n, u, v [3]float32, depth float32) []float32 {
	corner := func(su, sv float32) []float32 {
		var p [3]float32
		for i := range p {
			p[i] = n[i]*depth + u[i]*su*0.5 + v[i]*sv*0.5
		}
		return []float32{p[0], p[1], p[2], n[0], n[1], n[2], (su + 1) * 0.5, (sv + 1) * 0.5}
	}
	bl, br, tr, tl := corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)
	for _, c := range [][]float32{bl, br, tr, bl, tr, tl} {
		out = append(out, c...)
	}
	return out
}

// meshBuffer is a VAO with interleaved position, normal and texcoord.
type meshBuffer struct {
	vao, vbo uint32
	count    int32
}

func newMeshBuffer(vertices []float32) *meshBuffer {
	m := &meshBuffer{count: int32(len(vertices) / floatsPerVertex)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *meshBuffer) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

func (m *meshBuffer) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
}

// meshVertices returns the vertex data for a built-in mesh.
func meshVertices(mesh scene.Mesh) []float32 {
	if mesh == scene.MeshQuad {
		return QuadVertices()
	}
	return CubeVertices()
}
