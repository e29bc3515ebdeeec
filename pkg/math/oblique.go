package math

// ObliqueProjection replaces the near plane of an OpenGL perspective
// projection with an arbitrary camera-space clip plane (Lengyel, "Oblique
// View Frustum Depth Projection and Clipping").
//
// clipPlane is (nx, ny, nz, d) in camera space. Points with
// dot(clipPlane, (x, y, z, 1)) >= 0 survive; the camera itself must lie
// on the negative side. The far plane is skewed as a side effect.
func ObliqueProjection(proj Mat4, clipPlane Vec4) Mat4 {
	// Clip-space corner opposite the clip plane, brought back to camera space.
	q := Vec4{
		(signNonZero(clipPlane[0]) + proj[8]) / proj[0],
		(signNonZero(clipPlane[1]) + proj[9]) / proj[5],
		-1,
		(1 + proj[10]) / proj[14],
	}

	c := clipPlane
	s := 2 / c.Dot(q)
	c = Vec4{c[0] * s, c[1] * s, c[2] * s, c[3] * s}

	// Third row becomes c - fourth row.
	result := proj
	result[2] = c[0] - proj[3]
	result[6] = c[1] - proj[7]
	result[10] = c[2] - proj[11]
	result[14] = c[3] - proj[15]
	return result
}

// signNonZero is Sign with zero mapped to +1.
func signNonZero(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
