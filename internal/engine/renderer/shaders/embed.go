// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SlicedVertexShader is the vertex shader for lit geometry that can be cut
// by a portal plane.
//
//go:embed sliced.vert
var SlicedVertexShader string

// SlicedFragmentShader is the fragment shader for sliced geometry.
//
//go:embed sliced.frag
var SlicedFragmentShader string

// PortalVertexShader is the vertex shader for portal screens.
//
//go:embed portal.vert
var PortalVertexShader string

// PortalFragmentShader samples the view texture in screen space.
//
//go:embed portal.frag
var PortalFragmentShader string

// LineVertexShader is the vertex shader for debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug lines.
//
//go:embed line.frag
var LineFragmentShader string
