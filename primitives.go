// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

// Sphere is a primitive sphere record. Immutable once inserted.
type Sphere struct {
	Center Vec3
	Radius float32
}

// NewSphere creates a sphere. No validation is performed: a radius <= 0 is
// accepted and its appearance is up to the renderer.
func NewSphere(center Vec3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Cuboid is a primitive box record with half-extents and a rotation.
// Immutable once inserted.
type Cuboid struct {
	Center   Vec3
	Extents  Vec3
	Rotation Mat3x4
}

// NewCuboid creates an axis-aligned cuboid.
func NewCuboid(center, extents Vec3) Cuboid {
	return Cuboid{Center: center, Extents: extents, Rotation: IdentityRotation()}
}

// NewRotatedCuboid creates a cuboid rotated by Euler angles in radians.
// See EulerRotation for the axis order.
func NewRotatedCuboid(center, extents, euler Vec3) Cuboid {
	return Cuboid{Center: center, Extents: extents, Rotation: EulerRotation(euler)}
}

// Material holds the per-shape surface properties read by the renderer.
type Material struct {
	Color        Color
	Reflectivity float32
}

// compositeMaterial is stored on composite shape records. The renderer
// resolves the visible material by descending to the leaf primitives.
var compositeMaterial = Material{Color: Black, Reflectivity: 0}
