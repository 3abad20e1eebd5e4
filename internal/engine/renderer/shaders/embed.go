// Package shaders provides the embedded default GLSL sources.
package shaders

import _ "embed"

// TerrainVertexShader transforms grid vertices and forwards their height.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades by height.
//
//go:embed terrain.frag
var TerrainFragmentShader string
