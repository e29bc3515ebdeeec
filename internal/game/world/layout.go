package world

import (
	"github.com/Faultbox/portals/internal/config"
	"github.com/Faultbox/portals/internal/engine/material"
	"github.com/Faultbox/portals/internal/engine/scene"
	"github.com/Faultbox/portals/pkg/math"
)

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// euler converts layout rotations in degrees.
func euler(v [3]float32) math.Quat {
	return math.QuatFromEuler(v[0], v[1], v[2])
}

func meshByName(name string) scene.Mesh {
	if name == "quad" {
		return scene.MeshQuad
	}
	return scene.MeshCube
}

func newProp(l config.PropLayout) *scene.Object {
	obj := scene.NewObject(l.Name, meshByName(l.Mesh), material.NewSliced(l.Name, vec3(l.Color)))
	obj.Transform.SetPositionAndRotation(vec3(l.Position), euler(l.Rotation))
	obj.Transform.Scale = vec3(l.Scale)
	return obj
}
