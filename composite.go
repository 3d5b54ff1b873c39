// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

// Operator identifies the combination applied by a composite record.
// The numeric values are part of the GPU layout.
type Operator uint32

// Operator constants.
const (
	OpUnion Operator = iota
	OpIntersection
	OpDifference
	OpBlend
)

// NeutralBlend is the blend factor stored for every operator except OpBlend.
const NeutralBlend float32 = 0

const unknownStr = "Unknown"

// String returns a human-readable name for the operator.
func (op Operator) String() string {
	switch op {
	case OpUnion:
		return "Union"
	case OpIntersection:
		return "Intersection"
	case OpDifference:
		return "Difference"
	case OpBlend:
		return "Blend"
	default:
		return unknownStr
	}
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return op <= OpBlend
}

// Composite is a binary operation record. A and B are Shape Directory
// indices, never primitive table indices. Immutable once inserted.
type Composite struct {
	A, B  ShapeIndex
	Op    Operator
	Blend float32
}
