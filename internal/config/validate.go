package config

import (
	"errors"
	"fmt"
)

// Validate checks settings and the scene layout for values the application
// cannot run with.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		add("graphics: size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		add("camera: fov must be in (0, 180), got %g", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera: need 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Portal.RecursionLimit < 1 {
		add("portal: recursion_limit must be at least 1, got %d", c.Portal.RecursionLimit)
	}
	if c.Portal.TriggerPadding < 0 {
		add("portal: trigger_padding must not be negative, got %g", c.Portal.TriggerPadding)
	}

	errs = append(errs, c.Scene.validate()...)
	return errors.Join(errs...)
}

func (s *SceneConfig) validate() []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	byName := make(map[string]*PortalLayout, len(s.Portals))
	for i := range s.Portals {
		p := &s.Portals[i]
		if p.Name == "" {
			add("scene: portal %d has no name", i)
			continue
		}
		if _, dup := byName[p.Name]; dup {
			add("scene: duplicate portal %q", p.Name)
		}
		byName[p.Name] = p
		if p.Width <= 0 || p.Height <= 0 {
			add("scene: portal %q size must be positive, got %gx%g", p.Name, p.Width, p.Height)
		}
	}

	linkedBy := make(map[string]string, len(s.Portals))
	for i := range s.Portals {
		p := &s.Portals[i]
		if p.Name == "" || p.Link == "" {
			continue
		}
		if p.Link == p.Name {
			add("scene: portal %q is linked to itself", p.Name)
			continue
		}
		other, ok := byName[p.Link]
		if !ok {
			add("scene: portal %q links to unknown portal %q", p.Name, p.Link)
			continue
		}
		if other.Link != "" && other.Link != p.Name {
			add("scene: portal %q links to %q, which links to %q", p.Name, p.Link, other.Link)
		}
		if first, taken := linkedBy[p.Link]; taken {
			add("scene: portals %q and %q both link to %q", first, p.Name, p.Link)
			continue
		}
		linkedBy[p.Link] = p.Name
	}

	for i, t := range s.Travellers {
		if !positive(t.Scale) {
			add("scene: traveller %d (%s) scale must be positive, got %v", i, t.Name, t.Scale)
		}
	}
	for i, p := range s.Props {
		if p.Mesh != "" && p.Mesh != "cube" && p.Mesh != "quad" {
			add("scene: prop %d (%s) has unknown mesh %q", i, p.Name, p.Mesh)
		}
		if !positive(p.Scale) {
			add("scene: prop %d (%s) scale must be positive, got %v", i, p.Name, p.Scale)
		}
	}
	return errs
}

func positive(v [3]float32) bool {
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}
