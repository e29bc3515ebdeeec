package portal

import (
	"errors"
)

// Manager runs the per-frame portal phases over a set of portals.
type Manager struct {
	portals []*Portal
}

// NewManager creates a manager for portals.
func NewManager(portals ...*Portal) *Manager {
	return &Manager{portals: portals}
}

// Add registers more portals.
func (m *Manager) Add(portals ...*Portal) {
	m.portals = append(m.portals, portals...)
}

// Portals returns the managed portals.
func (m *Manager) Portals() []*Portal {
	return m.portals
}

// Find returns the portal with the given name, or nil.
func (m *Manager) Find(name string) *Portal {
	for _, p := range m.portals {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Update runs the teleport pass on every portal.
func (m *Manager) Update() {
	for _, p := range m.portals {
		p.Update()
	}
}

// Render runs PrePortalRender on every portal, then Render, then
// PostPortalRender. A failed render does not stop the other portals.
func (m *Manager) Render() error {
	for _, p := range m.portals {
		p.PrePortalRender()
	}
	var errs []error
	for _, p := range m.portals {
		if err := p.Render(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range m.portals {
		p.PostPortalRender()
	}
	return errors.Join(errs...)
}

// Close releases every portal's resources.
func (m *Manager) Close() {
	for _, p := range m.portals {
		p.Close()
	}
}
