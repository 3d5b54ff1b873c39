// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"encoding/binary"
	"math"
)

// Record strides in bytes. Every record is padded to a multiple of 16 so
// the arrays can back WGSL storage buffers directly. Offsets below match the
// struct declarations in gpu/layout.wgsl.
const (
	// HeaderSize is the size of the count header.
	//   0: count u32
	//   4: reserved, zero
	HeaderSize = 16

	// ShapeStride is the size of one Shape record.
	//   0: color vec3<f32>
	//  12: index u32
	//  16: shape_type u32
	//  20: reflectivity f32
	//  24: visible u32 (root flag)
	//  28: padding
	ShapeStride = 32

	// SphereStride is the size of one Sphere record.
	//   0: position vec3<f32>
	//  12: radius f32
	SphereStride = 16

	// CuboidStride is the size of one Cuboid record.
	//   0: position vec3<f32>
	//  12: padding
	//  16: scaling vec3<f32>
	//  28: padding
	//  32: rotation array<vec4<f32>, 3>
	CuboidStride = 80

	// CompositeStride is the size of one Composite record.
	//   0: a u32
	//   4: b u32
	//   8: op_type u32
	//  12: blend_factor f32
	CompositeStride = 16
)

var le = binary.LittleEndian

func putF32(b []byte, v float32) { le.PutUint32(b, math.Float32bits(v)) }
func getF32(b []byte) float32    { return math.Float32frombits(le.Uint32(b)) }

func putVec3(b []byte, v Vec3) {
	for i, c := range v.Array() {
		putF32(b[i*4:], c)
	}
}

func getVec3(b []byte) Vec3 {
	return Vec3{X: getF32(b[0:]), Y: getF32(b[4:]), Z: getF32(b[8:])}
}

func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// encodeHeader writes the count header.
func encodeHeader(count int) []byte {
	b := make([]byte, HeaderSize)
	le.PutUint32(b, uint32(count)) //nolint:gosec // bounded by capacity
	return b
}

// encodeShapes packs shapes into ShapeStride records.
func encodeShapes(shapes []Shape) []byte {
	out := make([]byte, len(shapes)*ShapeStride)
	for i, s := range shapes {
		b := out[i*ShapeStride:]
		putF32(b[0:], s.Material.Color.R)
		putF32(b[4:], s.Material.Color.G)
		putF32(b[8:], s.Material.Color.B)
		le.PutUint32(b[12:], s.Index)
		le.PutUint32(b[16:], uint32(s.Kind))
		putF32(b[20:], s.Material.Reflectivity)
		le.PutUint32(b[24:], boolU32(s.Root))
	}
	return out
}

func decodeShape(b []byte) Shape {
	return Shape{
		Material: Material{
			Color:        Color{R: getF32(b[0:]), G: getF32(b[4:]), B: getF32(b[8:])},
			Reflectivity: getF32(b[20:]),
		},
		Index: le.Uint32(b[12:]),
		Kind:  ShapeKind(le.Uint32(b[16:])),
		Root:  le.Uint32(b[24:]) != 0,
	}
}

// encodeSpheres packs spheres into SphereStride records.
func encodeSpheres(spheres []Sphere) []byte {
	out := make([]byte, len(spheres)*SphereStride)
	for i, s := range spheres {
		b := out[i*SphereStride:]
		putVec3(b[0:], s.Center)
		putF32(b[12:], s.Radius)
	}
	return out
}

func decodeSphere(b []byte) Sphere {
	return Sphere{Center: getVec3(b[0:]), Radius: getF32(b[12:])}
}

// encodeCuboids packs cuboids into CuboidStride records.
func encodeCuboids(cuboids []Cuboid) []byte {
	out := make([]byte, len(cuboids)*CuboidStride)
	for i, c := range cuboids {
		b := out[i*CuboidStride:]
		putVec3(b[0:], c.Center)
		putVec3(b[16:], c.Extents)
		for row := range 3 {
			for col := range 4 {
				putF32(b[32+row*16+col*4:], c.Rotation[row][col])
			}
		}
	}
	return out
}

func decodeCuboid(b []byte) Cuboid {
	c := Cuboid{Center: getVec3(b[0:]), Extents: getVec3(b[16:])}
	for row := range 3 {
		for col := range 4 {
			c.Rotation[row][col] = getF32(b[32+row*16+col*4:])
		}
	}
	return c
}

// encodeComposites packs composites into CompositeStride records.
func encodeComposites(composites []Composite) []byte {
	out := make([]byte, len(composites)*CompositeStride)
	for i, c := range composites {
		b := out[i*CompositeStride:]
		le.PutUint32(b[0:], uint32(c.A))
		le.PutUint32(b[4:], uint32(c.B))
		le.PutUint32(b[8:], uint32(c.Op))
		putF32(b[12:], c.Blend)
	}
	return out
}

func decodeComposite(b []byte) Composite {
	return Composite{
		A:     ShapeIndex(le.Uint32(b[0:])),
		B:     ShapeIndex(le.Uint32(b[4:])),
		Op:    Operator(le.Uint32(b[8:])),
		Blend: getF32(b[12:]),
	}
}
