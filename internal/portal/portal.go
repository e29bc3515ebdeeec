// Package portal renders linked portal pairs and teleports travellers that
// cross them.
//
// A frame runs in fixed phases driven by the caller: trigger callbacks
// (OnTravellerEnter/OnTravellerExit), the teleport pass (Update), then
// PrePortalRender, Render and PostPortalRender for every portal in turn.
// Manager runs the last four phases across a set of portals.
package portal

import (
	"go.uber.org/zap"

	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/internal/logger"
	"github.com/Faultbox/portals/pkg/math"
)

// Config holds per-portal settings.
type Config struct {
	Name           string
	RecursionLimit int     // Maximum nested portal-in-portal renders
	NearClipOffset float32 // Bias that keeps the oblique near plane off the surface
	NearClipLimit  float32 // Below this camera-space distance the oblique plane is skipped
}

// DefaultConfig returns the default portal settings.
func DefaultConfig(name string) Config {
	return Config{
		Name:           name,
		RecursionLimit: 5,
		NearClipOffset: 0.05,
		NearClipLimit:  0.2,
	}
}

// Portal is one surface of a linked pair. It renders the view through its
// partner into a texture shown on the partner's screen, and teleports
// tracked travellers that cross its plane.
type Portal struct {
	Name           string
	Transform      *transform.Transform
	Screen         *scene.Object
	RecursionLimit int
	NearClipOffset float32
	NearClipLimit  float32

	linked      *Portal
	camera      *camera.Camera
	playerCam   *camera.Camera
	renderer    Renderer
	viewTexture RenderTexture
	tracked     []Traveller
	log         *zap.Logger
}

// New creates an unlinked portal. The screen is parented to tr and must
// have a portal screen material.
func New(cfg Config, tr *transform.Transform, screen *scene.Object, playerCam *camera.Camera, r Renderer) *Portal {
	screen.Transform.SetParent(tr)

	p := &Portal{
		Name:           cfg.Name,
		Transform:      tr,
		Screen:         screen,
		RecursionLimit: cfg.RecursionLimit,
		NearClipOffset: cfg.NearClipOffset,
		NearClipLimit:  cfg.NearClipLimit,
		camera:         camera.New(playerCam.FieldOfView, playerCam.Aspect, playerCam.Near, playerCam.Far),
		playerCam:      playerCam,
		renderer:       r,
		log:            logger.Named("portal").With(zap.String("portal", cfg.Name)),
	}
	if m := screen.Material(); m != nil {
		m.SetInt(material.DisplayMask, 1)
	}
	return p
}

// Link connects a and b to each other. Previous partners of either portal
// are unlinked. Link(a, nil) unlinks a.
func Link(a, b *Portal) {
	if a == nil {
		return
	}
	if a == b {
		panic("portal: cannot link portal " + a.Name + " to itself")
	}
	if a.linked == b {
		return
	}
	a.Unlink()
	if b != nil {
		b.Unlink()
		b.linked = a
		a.linked = b
		a.log.Debug("linked", zap.String("linked", b.Name))
	}
}

// Unlink detaches p from its partner on both ends.
func (p *Portal) Unlink() {
	if p.linked == nil {
		return
	}
	other := p.linked
	p.linked = nil
	if other.linked == p {
		other.linked = nil
	}
	p.log.Debug("unlinked", zap.String("linked", other.Name))
}

// Linked returns the partner portal, or nil.
func (p *Portal) Linked() *Portal {
	return p.linked
}

// Camera returns the portal's render camera.
func (p *Portal) Camera() *camera.Camera {
	return p.camera
}

// ViewTexture returns the texture the portal renders into, or nil before
// the first render.
func (p *Portal) ViewTexture() RenderTexture {
	return p.viewTexture
}

// SideOfPortal returns which side of the portal plane pos is on: 1 along
// the forward normal, -1 against it, 0 on the plane.
func (p *Portal) SideOfPortal(pos math.Vec3) int {
	return math.Sign(pos.Sub(p.Transform.WorldPosition()).Dot(p.Transform.Forward()))
}

// SameSideOfPortal reports whether a and b are on the same side.
func (p *Portal) SameSideOfPortal(a, b math.Vec3) bool {
	return p.SideOfPortal(a) == p.SideOfPortal(b)
}

// Close releases the view texture.
func (p *Portal) Close() {
	if p.viewTexture != nil {
		p.viewTexture.Release()
		p.viewTexture = nil
	}
}

// screenMaterial returns the screen's first material, or nil.
func (p *Portal) screenMaterial() *material.Material {
	return p.Screen.Material()
}
