// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader blends four height layers and applies sun shadows.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// DepthVertexShader transforms terrain vertices into light space.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes depth only.
//
//go:embed depth.frag
var DepthFragmentShader string

// LineVertexShader is the vertex shader for colored debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for colored debug lines.
//
//go:embed line.frag
var LineFragmentShader string

// OverlayVertexShader places a screen-space quad in pixel coordinates.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader samples the overlay image.
//
//go:embed overlay.frag
var OverlayFragmentShader string
