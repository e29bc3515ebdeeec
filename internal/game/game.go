// Package game implements the main loop: input, simulation, portal passes
// and presentation.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/portals/internal/config"
	"github.com/Faultbox/portals/internal/engine/camera"
	"github.com/Faultbox/portals/internal/engine/debug"
	"github.com/Faultbox/portals/internal/engine/framebuffer"
	"github.com/Faultbox/portals/internal/engine/input"
	"github.com/Faultbox/portals/internal/engine/lighting"
	"github.com/Faultbox/portals/internal/engine/renderer"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/internal/engine/window"
	"github.com/Faultbox/portals/internal/game/world"
	"github.com/Faultbox/portals/internal/logger"
)

// triggerBoxPadding keeps trigger wireframes from z-fighting with screens.
const triggerBoxPadding = 0.01

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.Camera
	world    *world.World
	capture  *debug.Capture

	showTriggers bool
	log          *zap.Logger
}

// New creates the window, renderer and world described by cfg.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config:       cfg,
		showTriggers: cfg.Debug.ShowTriggers,
		log:          logger.Named("game"),
	}

	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("recursion", cfg.Portal.RecursionLimit),
	)

	format, err := debug.ParseFormat(cfg.Debug.CaptureFormat)
	if err != nil {
		return nil, err
	}
	g.capture = debug.NewCapture(cfg.Debug.CaptureDir, format)

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      "Portals",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.DrawableSize()
	g.camera = camera.New(cfg.Camera.FOV, float32(width)/float32(height), cfg.Camera.Near, cfg.Camera.Far)

	sc := scene.New()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		VSync:      cfg.Graphics.VSync,
		ClearColor: vec3(cfg.Graphics.ClearColor),
		LineColor:  vec3([3]float32{0.1, 1, 0.3}),
		LightDir:   lighting.SunDirection(cfg.Graphics.SunLongitude, cfg.Graphics.SunLatitude),
	}, sc)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.world, err = world.New(cfg, sc, g.camera, g.renderer)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	g.input = input.New()
	g.window.SetMouseCaptured(true)

	g.log.Info("game initialized successfully")
	return g, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input
		if g.input.Update() {
			break
		}
		g.handleEvents()

		// 2. Move the player, then bodies, triggers and teleports
		g.handleMovement(dt)
		g.world.Step(dt)

		// 3. Render portal views, then the main view
		if err := g.world.RenderPortals(); err != nil {
			return fmt.Errorf("portal render error: %w", err)
		}
		g.renderer.RenderScene(g.camera)
		if g.showTriggers {
			g.renderer.DrawBoxes(g.camera, g.world.TriggerBoxes(), triggerBoxPadding)
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Debug.ShowFPS {
				g.log.Info("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	g.log.Info("game loop stopped")
	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := g.window.DrawableSize()
			g.renderer.Resize(width, height)
			if height > 0 {
				g.camera.Aspect = float32(width) / float32(height)
			}
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_F3:
				g.showTriggers = !g.showTriggers
			case sdl.SCANCODE_F4:
				g.logAim()
			case sdl.SCANCODE_F12:
				if err := g.captureViews(); err != nil {
					g.log.Warn("capture failed", zap.Error(err))
				}
			}
		}
	}
}

func (g *Game) handleMovement(dt float64) {
	c := g.world.Player.Controller
	if dx, dy := g.input.MouseDelta(); dx != 0 || dy != 0 {
		c.HandleLook(dx, dy)
	}
	forward := g.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := g.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	up := g.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E)
	if forward != 0 || right != 0 || up != 0 {
		c.HandleMovement(forward, right, up, dt)
	}
}

// logAim reports the object under the crosshair.
func (g *Game) logAim() {
	hit, p, ok := g.world.Aim()
	if !ok {
		g.log.Info("aim: nothing")
		return
	}
	fields := []zap.Field{zap.String("object", hit.Object.Name), zap.Float32("distance", hit.Distance)}
	if p != nil {
		linked := ""
		if p.Linked() != nil {
			linked = p.Linked().Name
		}
		fields = append(fields,
			zap.String("portal", p.Name),
			zap.String("linked", linked),
			zap.Int("tracked", len(p.Tracked())))
	}
	g.log.Info("aim", fields...)
}

// captureViews writes every portal's view texture to the capture directory.
func (g *Game) captureViews() error {
	var errs []error
	for _, p := range g.world.Portals.Portals() {
		fb, ok := p.ViewTexture().(*framebuffer.Framebuffer)
		if !ok {
			continue
		}
		width, height := fb.Size()
		path, err := g.capture.SavePixels(p.Name, fb.ReadPixels(), int(width), int(height))
		if err != nil {
			errs = append(errs, fmt.Errorf("portal %s: %w", p.Name, err))
			continue
		}
		g.log.Info("view captured", zap.String("portal", p.Name), zap.String("path", path))
	}
	return errors.Join(errs...)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.world != nil {
		g.world.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
