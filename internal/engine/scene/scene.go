// Package scene holds the flat list of renderable objects drawn each frame.
package scene

// Scene is an ordered list of objects.
type Scene struct {
	objects []*Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...*Object) {
	s.objects = append(s.objects, objs...)
}

// Remove deletes obj from the scene. It reports whether obj was present.
func (s *Scene) Remove(obj *Object) bool {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Objects returns all objects, enabled or not.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Find returns the first object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Visible calls fn for every enabled object.
func (s *Scene) Visible(fn func(*Object)) {
	for _, o := range s.objects {
		if o.Enabled {
			fn(o)
		}
	}
}
