// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// StandardVertexShader is the vertex shader shared by all lit geometry.
//
//go:embed standard.vert
var StandardVertexShader string

// LambertFragmentShader shades with per-vertex colors or a diffuse texture.
//
//go:embed lambert.frag
var LambertFragmentShader string

// BumpVertexShader displaces vertices and builds the tangent frame.
//
//go:embed bump.vert
var BumpVertexShader string

// BumpFragmentShader shades with diffuse/normal/displacement channels.
//
//go:embed bump.frag
var BumpFragmentShader string
