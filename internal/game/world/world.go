// Package world builds the portal scene from a layout and advances it one
// frame at a time.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/portals/internal/config"
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/picking"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/transform"
	"github.com/Faultbox/portals/internal/engine/trigger"
	"github.com/Faultbox/portals/internal/engine/visibility"
	"github.com/Faultbox/portals/internal/logger"
	"github.com/Faultbox/portals/internal/portal"
	"github.com/Faultbox/portals/pkg/math"
)

// World holds everything the frame loop advances.
type World struct {
	Scene    *scene.Scene
	Portals  *portal.Manager
	Triggers *trigger.World
	Player   *Player
	Bodies   []*portal.Body

	areas []*trigger.Area
	log   *zap.Logger
}

// New populates sc from cfg. player is the main camera and r renders
// portal views.
func New(cfg *config.Config, sc *scene.Scene, player *camera.Camera, r portal.Renderer) (*World, error) {
	w := &World{
		Scene:    sc,
		Portals:  portal.NewManager(),
		Triggers: trigger.NewWorld(),
		log:      logger.Named("world"),
	}

	w.placePlayer(cfg, player)
	for _, prop := range cfg.Scene.Props {
		w.Scene.Add(newProp(prop))
	}
	if err := w.buildPortals(cfg, r); err != nil {
		return nil, err
	}
	for _, tl := range cfg.Scene.Travellers {
		w.addBody(tl)
	}

	w.log.Info("world built",
		zap.Int("portals", len(w.Portals.Portals())),
		zap.Int("travellers", len(w.Bodies)),
		zap.Int("objects", len(w.Scene.Objects())))
	return w, nil
}

func (w *World) placePlayer(cfg *config.Config, cam *camera.Camera) {
	cam.Transform.SetPositionAndRotation(vec3(cfg.Scene.Player.Position), math.QuatIdentity())
	c := camera.NewFlyController(cam)
	c.MoveSpeed = cfg.Camera.MoveSpeed
	c.LookSensitivity = cfg.Camera.MouseSensitivity
	c.Yaw = math.Deg2Rad(cfg.Scene.Player.Yaw)
	c.Pitch = math.Deg2Rad(cfg.Scene.Player.Pitch)
	c.HandleLook(0, 0)

	w.Player = NewPlayer(c)
	w.Triggers.AddCollider(w.Player)
}

func (w *World) buildPortals(cfg *config.Config, r portal.Renderer) error {
	byName := make(map[string]*portal.Portal, len(cfg.Scene.Portals))
	playerCam := w.Player.Camera()

	for _, l := range cfg.Scene.Portals {
		screenMat := material.NewPortalScreen(l.Name+" screen", vec3(l.Color))
		screen := scene.NewObject(l.Name+" screen", scene.MeshCube, screenMat)
		screen.Transform.Scale = math.Vec3{X: l.Width, Y: l.Height, Z: 0.01}

		pc := portal.Config{
			Name:           l.Name,
			RecursionLimit: cfg.Portal.RecursionLimit,
			NearClipOffset: cfg.Portal.NearClipOffset,
			NearClipLimit:  cfg.Portal.NearClipLimit,
		}
		tr := transform.NewAt(vec3(l.Position), euler(l.Rotation))
		p := portal.New(pc, tr, screen, playerCam, r)
		p.ProtectScreenFromClipping(playerCam.Position())

		byName[l.Name] = p
		w.Portals.Add(p)
		w.Scene.Add(screen)
		w.addArea(p, cfg.Portal.TriggerPadding)
	}

	for _, l := range cfg.Scene.Portals {
		if l.Link == "" {
			continue
		}
		other, ok := byName[l.Link]
		if !ok {
			return fmt.Errorf("portal %s links to unknown portal %s", l.Name, l.Link)
		}
		portal.Link(byName[l.Name], other)
	}
	return nil
}

// addArea surrounds p's screen with a trigger volume that tracks travellers.
func (w *World) addArea(p *portal.Portal, padding float32) {
	area := &trigger.Area{
		Name: p.Name,
		Bounds: func() visibility.AABB {
			return p.Screen.Bounds().Expand(padding)
		},
		OnEnter: func(c trigger.Collider) {
			if t, ok := c.(portal.Traveller); ok {
				p.OnTravellerEnter(t)
			}
		},
		OnExit: func(c trigger.Collider) {
			if t, ok := c.(portal.Traveller); ok {
				p.OnTravellerExit(t)
			}
		},
	}
	w.areas = append(w.areas, area)
	w.Triggers.AddArea(area)
}

func (w *World) addBody(l config.TravellerLayout) {
	name := l.Name
	if name == "" {
		name = fmt.Sprintf("traveller %d", len(w.Bodies))
	}
	obj := scene.NewObject(name, scene.MeshCube, material.NewSliced(name, vec3(l.Color)))
	obj.Transform.SetPositionAndRotation(vec3(l.Position), euler(l.Rotation))
	obj.Transform.Scale = vec3(l.Scale)

	body := portal.NewBody(obj)
	body.Velocity = vec3(l.Velocity)

	w.Bodies = append(w.Bodies, body)
	w.Scene.Add(body.Graphics, body.GraphicsClone())
	w.Triggers.AddCollider(body)
}

// Step advances bodies by dt, fires trigger callbacks and runs the
// teleport pass. Player movement must already be applied.
func (w *World) Step(dt float64) {
	for _, b := range w.Bodies {
		b.Step(dt)
	}
	w.Triggers.Step()
	w.Portals.Update()
}

// RenderPortals renders every portal view for the current player pose.
func (w *World) RenderPortals() error {
	return w.Portals.Render()
}

// TriggerBoxes returns the current trigger volumes.
func (w *World) TriggerBoxes() []visibility.AABB {
	boxes := make([]visibility.AABB, len(w.areas))
	for i, a := range w.areas {
		boxes[i] = a.Bounds()
	}
	return boxes
}

// Close releases portal resources.
func (w *World) Close() {
	w.Portals.Close()
}

// Aim returns what the player is looking at and, for a portal screen, the
// portal it belongs to.
func (w *World) Aim() (picking.Hit, *portal.Portal, bool) {
	hit, ok := picking.Nearest(picking.CenterRay(w.Player.Camera()), w.Scene, nil)
	if !ok {
		return hit, nil, false
	}
	for _, p := range w.Portals.Portals() {
		if p.Screen == hit.Object {
			return hit, p, true
		}
	}
	return hit, nil, true
}
