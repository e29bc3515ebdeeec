package portal

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/pkg/math"
)

// RenderTexture is an off-screen colour target.
type RenderTexture interface {
	material.Texture
	Size() (width, height int32)
	Release()
}

// Renderer draws the scene for portal cameras.
type Renderer interface {
	// ViewportSize returns the current screen size in pixels.
	ViewportSize() (width, height int32)
	// NewRenderTexture allocates a colour target.
	NewRenderTexture(width, height int32) (RenderTexture, error)
	// RenderToTexture draws every enabled object from cam into target.
	RenderToTexture(cam *camera.Camera, target RenderTexture) error
}

// PrePortalRender updates slice planes of tracked travellers before any
// portal renders.
func (p *Portal) PrePortalRender() {
	if p.linked == nil {
		return
	}
	for _, t := range p.tracked {
		p.updateSliceParams(t)
	}
}

// Render draws the view through the linked portal into this portal's view
// texture, which the linked portal's screen displays. Nothing happens when
// the portal is unlinked or the linked screen is outside the player's view.
func (p *Portal) Render() error {
	if p.linked == nil {
		return nil
	}
	if !visibility.VisibleFromCamera(p.linked.Screen, p.playerCam) {
		return nil
	}
	if err := p.createViewTexture(); err != nil {
		return err
	}
	p.syncCamera()

	limit := max(p.RecursionLimit, 1)
	positions := make([]math.Vec3, limit)
	rotations := make([]math.Quat, limit)

	portalToLinked := p.Transform.LocalToWorld().Mul(p.linked.Transform.WorldToLocal())
	localToWorld := p.playerCam.Transform.LocalToWorld()
	p.camera.Transform.SetPositionAndRotation(p.playerCam.Position(), p.playerCam.Transform.WorldRotation())

	startIndex := limit - 1
	for i := 0; i < limit; i++ {
		if i > 0 && !visibility.BoundsOverlap(p.Screen, p.linked.Screen, p.camera) {
			break
		}
		localToWorld = portalToLinked.Mul(localToWorld)
		startIndex = limit - i - 1
		positions[startIndex] = localToWorld.Translation()
		rotations[startIndex] = localToWorld.Rotation()
		p.camera.Transform.SetPositionAndRotation(positions[startIndex], rotations[startIndex])
	}

	linkedMat := p.linked.screenMaterial()
	p.Screen.Enabled = false
	if linkedMat != nil {
		linkedMat.SetInt(material.DisplayMask, 0)
	}
	defer func() {
		p.Screen.Enabled = true
		if linkedMat != nil {
			linkedMat.SetInt(material.DisplayMask, 1)
		}
	}()

	for i := startIndex; i < limit; i++ {
		p.camera.Transform.SetPositionAndRotation(positions[i], rotations[i])
		p.setNearClipPlane()
		if err := p.renderer.RenderToTexture(p.camera, p.viewTexture); err != nil {
			return fmt.Errorf("rendering portal %s level %d: %w", p.Name, limit-1-i, err)
		}
		if i == startIndex && linkedMat != nil {
			linkedMat.SetInt(material.DisplayMask, 1)
		}
	}
	return nil
}

// PostPortalRender refreshes slice planes and thickens the screen against
// the player camera after every portal has rendered.
func (p *Portal) PostPortalRender() {
	if p.linked == nil {
		return
	}
	for _, t := range p.tracked {
		p.updateSliceParams(t)
	}
	p.ProtectScreenFromClipping(p.playerCam.Position())
}

// createViewTexture allocates the view texture on first use and whenever
// the viewport size changes, and binds it to the linked screen.
func (p *Portal) createViewTexture() error {
	width, height := p.renderer.ViewportSize()
	if p.viewTexture != nil {
		w, h := p.viewTexture.Size()
		if w == width && h == height {
			return nil
		}
		p.viewTexture.Release()
		p.viewTexture = nil
	}

	tex, err := p.renderer.NewRenderTexture(width, height)
	if err != nil {
		return fmt.Errorf("creating view texture for portal %s: %w", p.Name, err)
	}
	p.viewTexture = tex
	if m := p.linked.screenMaterial(); m != nil {
		m.SetTexture(material.MainTex, tex)
	}
	p.log.Debug("view texture allocated",
		zap.Int32("width", width),
		zap.Int32("height", height))
	return nil
}

// syncCamera copies the player camera's lens onto the portal camera and
// drops last frame's oblique projection.
func (p *Portal) syncCamera() {
	p.camera.ResetProjectionMatrix()
	p.camera.FieldOfView = p.playerCam.FieldOfView
	p.camera.Aspect = p.playerCam.Aspect
	p.camera.Near = p.playerCam.Near
	p.camera.Far = p.playerCam.Far
}
