// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import "math"

// Mat3x4 is a 3x3 rotation stored as three rows of four floats.
// The fourth column is always zero; it exists so each row occupies a
// full 16-byte vec4 slot in GPU memory:
//
//	| r00 r01 r02 0 |
//	| r10 r11 r12 0 |
//	| r20 r21 r22 0 |
type Mat3x4 [3][4]float32

// IdentityRotation returns the identity rotation.
func IdentityRotation() Mat3x4 {
	return Mat3x4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// EulerRotation builds the rotation Rz(c) * Ry(b) * Rx(a) from Euler
// angles in radians, where euler = (a, b, c).
func EulerRotation(euler Vec3) Mat3x4 {
	sa, ca := math.Sincos(float64(euler.X))
	sb, cb := math.Sincos(float64(euler.Y))
	sc, cc := math.Sincos(float64(euler.Z))

	return Mat3x4{
		{f32(cb * cc), f32(sa*sb*cc - ca*sc), f32(ca*sb*cc + sa*sc), 0},
		{f32(cb * sc), f32(sa*sb*sc + ca*cc), f32(ca*sb*sc - sa*cc), 0},
		{f32(-sb), f32(sa * cb), f32(ca * cb), 0},
	}
}

// IsIdentity reports whether m is exactly the identity rotation.
func (m Mat3x4) IsIdentity() bool {
	return m == IdentityRotation()
}

func f32(v float64) float32 { return float32(v) }
