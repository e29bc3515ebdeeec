// Package renderer draws scenes with OpenGL and renders portal views.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/debug"
	"github.com/Faultbox/portals/internal/engine/framebuffer"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/renderer/shaders"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/shader"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/internal/logger"
	"github.com/Faultbox/portals/internal/portal"
	"github.com/Faultbox/portals/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	VSync      bool
	ClearColor math.Vec3
	LineColor  math.Vec3
	LightDir   math.Vec3 // Points toward the light
}

// Renderer draws a scene to the window or to portal view textures.
type Renderer struct {
	config Config
	scene  *scene.Scene
	log    *zap.Logger

	programs    map[material.ShaderKind]*shader.Program
	lineProgram *shader.Program
	meshes      map[scene.Mesh]*meshBuffer

	lineVAO   uint32
	lineVBO   uint32
	lineCount int32

	// scratch receives portal renders before they are copied to the
	// target, so a screen never samples the texture being drawn into.
	scratch *framebuffer.Framebuffer
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, sc *scene.Scene) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		scene:    sc,
		log:      logger.Named("renderer"),
		programs: make(map[material.ShaderKind]*shader.Program),
		meshes:   make(map[scene.Mesh]*meshBuffer),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	if err := r.createPrograms(); err != nil {
		r.Close()
		return nil, err
	}
	for _, mesh := range []scene.Mesh{scene.MeshCube, scene.MeshQuad} {
		r.meshes[mesh] = newMeshBuffer(meshVertices(mesh))
	}
	r.createLineBuffer()

	scratch, err := framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("creating scratch target: %w", err)
	}
	r.scratch = scratch

	return r, nil
}

func (r *Renderer) createPrograms() error {
	sources := []struct {
		kind     material.ShaderKind
		vertex   string
		fragment string
	}{
		{material.ShaderSliced, shaders.SlicedVertexShader, shaders.SlicedFragmentShader},
		{material.ShaderPortal, shaders.PortalVertexShader, shaders.PortalFragmentShader},
	}
	for _, src := range sources {
		p, err := shader.NewProgram(src.vertex, src.fragment)
		if err != nil {
			return fmt.Errorf("compiling %s shader: %w", src.kind, err)
		}
		r.programs[src.kind] = p
		r.log.Debug("shader program created",
			zap.Stringer("shader", src.kind),
			zap.Uint32("program", p.ID))
	}

	lines, err := shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return fmt.Errorf("compiling line shader: %w", err)
	}
	r.lineProgram = lines
	return nil
}

func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, p := range r.programs {
		p.Delete()
	}
	if r.lineProgram != nil {
		r.lineProgram.Delete()
	}
	for _, m := range r.meshes {
		m.delete()
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.scratch != nil {
		r.scratch.Release()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ViewportSize returns the window size in pixels.
func (r *Renderer) ViewportSize() (int32, int32) {
	return int32(r.config.Width), int32(r.config.Height)
}

// NewRenderTexture allocates a framebuffer-backed view texture.
func (r *Renderer) NewRenderTexture(width, height int32) (portal.RenderTexture, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// RenderToTexture draws the scene from cam into target.
func (r *Renderer) RenderToTexture(cam *camera.Camera, target portal.RenderTexture) error {
	fb, ok := target.(*framebuffer.Framebuffer)
	if !ok {
		return fmt.Errorf("unsupported render target %T", target)
	}

	r.scratch.Resize(fb.Size())
	restore := r.scratch.BindWithViewport()
	r.scratch.Clear(r.config.ClearColor.X, r.config.ClearColor.Y, r.config.ClearColor.Z, 1)
	r.drawScene(cam)
	r.scratch.BlitTo(fb)
	restore()
	return nil
}

// RenderScene draws the scene from cam to the window.
func (r *Renderer) RenderScene(cam *camera.Camera) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.ClearColor(r.config.ClearColor.X, r.config.ClearColor.Y, r.config.ClearColor.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.drawScene(cam)
}

// drawScene draws every enabled object that intersects cam's frustum.
func (r *Renderer) drawScene(cam *camera.Camera) {
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	planes := visibility.FrustumPlanes(proj.Mul(view))

	r.scene.Visible(func(obj *scene.Object) {
		if !visibility.TestPlanesAABB(planes, obj.Bounds()) {
			return
		}
		m := obj.Material()
		if m == nil {
			return
		}
		p := r.programs[m.Shader]
		mesh := r.meshes[obj.Mesh]
		if p == nil || mesh == nil {
			return
		}

		// Thin screens are seen from both sides
		if m.Shader == material.ShaderPortal {
			gl.Disable(gl.CULL_FACE)
			defer gl.Enable(gl.CULL_FACE)
		}

		p.Use()
		p.SetMat4("view", view)
		p.SetMat4("projection", proj)
		p.SetMat4("model", obj.LocalToWorld())
		if m.Shader == material.ShaderSliced {
			p.SetVec3("lightDir", r.config.LightDir)
		}
		p.ApplyMaterial(m)
		mesh.draw()
	})
	gl.BindVertexArray(0)
}

// DrawBoxes draws wireframe boxes from cam on the current target.
func (r *Renderer) DrawBoxes(cam *camera.Camera, boxes []visibility.AABB, padding float32) {
	if len(boxes) == 0 {
		return
	}
	vertices := make([]float32, 0, len(boxes)*debug.BBoxWireframeVertexCount*3)
	for _, b := range boxes {
		vertices = append(vertices, debug.WireframeFromAABB(b, padding)...)
	}
	r.lineCount = int32(len(vertices) / 3)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.lineProgram.Use()
	r.lineProgram.SetMat4("view", cam.ViewMatrix())
	r.lineProgram.SetMat4("projection", cam.ProjectionMatrix())
	r.lineProgram.SetVec3("color", r.config.LineColor)

	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, r.lineCount)
	gl.BindVertexArray(0)
}
