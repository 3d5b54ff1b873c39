// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

// ShapeIndex is a position in the Shape Directory.
type ShapeIndex uint32

// PrimitiveIndex is a position in one of the primitive tables.
type PrimitiveIndex uint32

// CompositeIndex is a position in the Composite Table.
type CompositeIndex uint32

// ShapeKind tags a Shape record with the table its Index points into.
// The numeric values are part of the GPU layout.
type ShapeKind uint32

// ShapeKind constants.
const (
	KindSphere ShapeKind = iota
	KindCuboid
	KindComposite
)

// String returns a human-readable name for the kind.
func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	case KindCuboid:
		return "Cuboid"
	case KindComposite:
		return "Composite"
	default:
		return unknownStr
	}
}

// Shape is one entry of the Shape Directory.
//
// Root marks an entry the renderer traverses from directly. Interior
// composite operands are not root; they are reached only through a
// composite record. The same bit is what the GPU layout calls "visible".
type Shape struct {
	Material Material
	Kind     ShapeKind
	Index    uint32
	Root     bool
}
