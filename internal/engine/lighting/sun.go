// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/portals/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a light
// direction. Longitude is rotation around Y from +Z toward +X, latitude is
// elevation from the horizon. The result points toward the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(math.Deg2Rad(longitude))
	latRad := float64(math.Deg2Rad(latitude))

	// Spherical to Cartesian
	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}
