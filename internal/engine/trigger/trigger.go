// Package trigger detects overlap between trigger areas and colliders and
// reports enter/exit transitions once per physics step.
package trigger

import (
	"github.com/Faultbox/portals/internal/engine/visibility"
)

// Collider is anything with world-space bounds that can enter an area.
type Collider interface {
	Bounds() visibility.AABB
}

// Area is a trigger volume with enter/exit callbacks.
type Area struct {
	Name    string
	Bounds  func() visibility.AABB
	OnEnter func(Collider)
	OnExit  func(Collider)
}

type pair struct {
	area     *Area
	collider Collider
}

// World tracks which colliders overlap which areas.
type World struct {
	areas     []*Area
	colliders []Collider
	inside    map[pair]bool
}

// NewWorld creates an empty trigger world.
func NewWorld() *World {
	return &World{inside: make(map[pair]bool)}
}

// AddArea registers a trigger area.
func (w *World) AddArea(a *Area) {
	w.areas = append(w.areas, a)
}

// AddCollider registers a collider.
func (w *World) AddCollider(c Collider) {
	w.colliders = append(w.colliders, c)
}

// RemoveCollider unregisters c. Areas it was inside receive OnExit.
func (w *World) RemoveCollider(c Collider) {
	for i, existing := range w.colliders {
		if existing != c {
			continue
		}
		w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
		for _, a := range w.areas {
			p := pair{a, c}
			if w.inside[p] {
				delete(w.inside, p)
				if a.OnExit != nil {
					a.OnExit(c)
				}
			}
		}
		return
	}
}

// Step tests every collider against every area. Exits are reported before
// enters so a collider moving between adjacent areas leaves one first.
func (w *World) Step() {
	type event struct {
		p     pair
		enter bool
	}
	var events []event

	for _, a := range w.areas {
		bounds := a.Bounds()
		for _, c := range w.colliders {
			p := pair{a, c}
			now := bounds.Intersects(c.Bounds())
			if now != w.inside[p] {
				events = append(events, event{p: p, enter: now})
			}
		}
	}

	for _, e := range events {
		if !e.enter {
			delete(w.inside, e.p)
			if e.p.area.OnExit != nil {
				e.p.area.OnExit(e.p.collider)
			}
		}
	}
	for _, e := range events {
		if e.enter {
			w.inside[e.p] = true
			if e.p.area.OnEnter != nil {
				e.p.area.OnEnter(e.p.collider)
			}
		}
	}
}

// Inside reports whether c currently overlaps a.
func (w *World) Inside(a *Area, c Collider) bool {
	return w.inside[pair{a, c}]
}
