// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

// Vec3 is a 3D vector in world space. Components are float32 because
// that is what the consuming shaders read.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Mul returns the vector scaled by s.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Array returns the components in x, y, z order, as they are laid out
// in a vec3<f32>.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
