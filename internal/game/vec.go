package game

import "github.com/Faultbox/portals/pkg/math"

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
