// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

// Descriptor describes a CSG tree before it is flattened into a Collection.
// It is a closed sum type: the only implementations are SphereNode,
// CuboidNode, RefNode and OpNode, usually obtained from the constructors
// in this file. Pointers to these types are accepted as well; a nil
// pointer counts as a nil node.
//
// Example:
//
//	d := csg.Difference(
//	    csg.CuboidLeaf(csg.NewCuboid(csg.V3(0, 0, 20), csg.V3(2, 2, 2)), m),
//	    csg.SphereLeaf(csg.NewSphere(csg.V3(0, 0, 20), 2.6), m),
//	)
//	root, err := c.CreateComposite(d)
type Descriptor interface {
	descriptor()
}

// SphereNode is a sphere leaf.
type SphereNode struct {
	Sphere   Sphere
	Material Material
}

// CuboidNode is a cuboid leaf.
type CuboidNode struct {
	Cuboid   Cuboid
	Material Material
}

// RefNode is a leaf that reuses a shape already in the Shape Directory.
// It produces no new records.
type RefNode struct {
	Index ShapeIndex
}

// OpNode combines two subtrees.
type OpNode struct {
	Op          Operator
	Left, Right Descriptor
	Blend       float32
}

func (SphereNode) descriptor() {}
func (CuboidNode) descriptor() {}
func (RefNode) descriptor()    {}
func (OpNode) descriptor()     {}

// value returns d with pointer variants dereferenced. A nil pointer
// becomes a nil Descriptor.
func value(d Descriptor) Descriptor {
	switch n := d.(type) {
	case *SphereNode:
		if n == nil {
			return nil
		}
		return *n
	case *CuboidNode:
		if n == nil {
			return nil
		}
		return *n
	case *RefNode:
		if n == nil {
			return nil
		}
		return *n
	case *OpNode:
		if n == nil {
			return nil
		}
		return *n
	}
	return d
}

// SphereLeaf returns a leaf that inserts a new sphere.
func SphereLeaf(s Sphere, m Material) Descriptor {
	return SphereNode{Sphere: s, Material: m}
}

// CuboidLeaf returns a leaf that inserts a new cuboid.
func CuboidLeaf(c Cuboid, m Material) Descriptor {
	return CuboidNode{Cuboid: c, Material: m}
}

// Ref returns a leaf that uses an existing Shape Directory entry as an
// operand, typically the index returned by an earlier CreateComposite.
func Ref(i ShapeIndex) Descriptor {
	return RefNode{Index: i}
}

// Union returns the union of a and b.
func Union(a, b Descriptor) Descriptor {
	return OpNode{Op: OpUnion, Left: a, Right: b, Blend: NeutralBlend}
}

// Intersection returns the intersection of a and b.
func Intersection(a, b Descriptor) Descriptor {
	return OpNode{Op: OpIntersection, Left: a, Right: b, Blend: NeutralBlend}
}

// Difference returns a with b subtracted.
func Difference(a, b Descriptor) Descriptor {
	return OpNode{Op: OpDifference, Left: a, Right: b, Blend: NeutralBlend}
}

// Blend returns a smooth union of a and b with blend factor k.
func Blend(a, b Descriptor, k float32) Descriptor {
	return OpNode{Op: OpBlend, Left: a, Right: b, Blend: k}
}

// Leaves returns the number of leaves in d, including Ref leaves.
func Leaves(d Descriptor) int {
	switch n := value(d).(type) {
	case SphereNode, CuboidNode, RefNode:
		return 1
	case OpNode:
		return Leaves(n.Left) + Leaves(n.Right)
	default:
		return 0
	}
}

// Operators returns the number of operator nodes in d.
func Operators(d Descriptor) int {
	if n, ok := value(d).(OpNode); ok {
		return 1 + Operators(n.Left) + Operators(n.Right)
	}
	return 0
}
