package picking

import (
	"github.com/Faultbox/portals/internal/engine/scene"
)

// Hit is the nearest object along a ray.
type Hit struct {
	Object   *scene.Object
	Distance float32
}

// Nearest returns the closest enabled object in sc that r hits. skip
// excludes objects such as the one the ray starts in.
func Nearest(r Ray, sc *scene.Scene, skip func(*scene.Object) bool) (Hit, bool) {
	var best Hit
	found := false
	sc.Visible(func(obj *scene.Object) {
		if skip != nil && skip(obj) {
			return
		}
		t, ok := r.IntersectAABB(obj.Bounds())
		if !ok || (found && t >= best.Distance) {
			return
		}
		best = Hit{Object: obj, Distance: t}
		found = true
	})
	return best, found
}
