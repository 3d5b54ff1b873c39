// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Snapshot is a decoded Frame: the tables as a consumer reading the GPU
// buffers would see them.
type Snapshot struct {
	Count      uint32
	Shapes     []Shape
	Spheres    []Sphere
	Cuboids    []Cuboid
	Composites []Composite
}

// DecodeFrame decodes f. It fails with ErrMalformedFrame when a table is not
// a whole number of records or the header is short; it does not check
// table invariants, see Snapshot.Validate.
func DecodeFrame(f *Frame) (*Snapshot, error) {
	if f == nil || len(f.Header) < 4 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedFrame)
	}
	tables := [...]struct {
		name   Table
		data   []byte
		stride int
	}{
		{TableShapes, f.Shapes, ShapeStride},
		{TableSpheres, f.Spheres, SphereStride},
		{TableCuboids, f.Cuboids, CuboidStride},
		{TableComposites, f.Composites, CompositeStride},
	}
	for _, t := range tables {
		if len(t.data)%t.stride != 0 {
			return nil, fmt.Errorf("%w: %s table is %d bytes, not a multiple of %d",
				ErrMalformedFrame, t.name, len(t.data), t.stride)
		}
	}

	s := &Snapshot{
		Count:      f.Count(),
		Shapes:     make([]Shape, len(f.Shapes)/ShapeStride),
		Spheres:    make([]Sphere, len(f.Spheres)/SphereStride),
		Cuboids:    make([]Cuboid, len(f.Cuboids)/CuboidStride),
		Composites: make([]Composite, len(f.Composites)/CompositeStride),
	}
	for i := range s.Shapes {
		s.Shapes[i] = decodeShape(f.Shapes[i*ShapeStride:])
	}
	for i := range s.Spheres {
		s.Spheres[i] = decodeSphere(f.Spheres[i*SphereStride:])
	}
	for i := range s.Cuboids {
		s.Cuboids[i] = decodeCuboid(f.Cuboids[i*CuboidStride:])
	}
	for i := range s.Composites {
		s.Composites[i] = decodeComposite(f.Composites[i*CompositeStride:])
	}
	return s, nil
}

// Roots returns the indices of all root shapes in directory order.
func (s *Snapshot) Roots() []ShapeIndex {
	var roots []ShapeIndex
	for i, sh := range s.Shapes {
		if sh.Root {
			roots = append(roots, ShapeIndex(i)) //nolint:gosec // bounded by table size
		}
	}
	return roots
}

// Subtree returns the set of shape indices reachable from i, including i,
// by following composite operands. An out-of-range i yields an empty set.
// Operands that point outside the tables are skipped, so Subtree is safe
// on snapshots that have not been validated.
func (s *Snapshot) Subtree(i ShapeIndex) *roaring.Bitmap {
	seen := roaring.New()
	s.mark(i, seen)
	return seen
}

func (s *Snapshot) mark(i ShapeIndex, seen *roaring.Bitmap) {
	if int(i) >= len(s.Shapes) || !seen.CheckedAdd(uint32(i)) {
		return
	}
	sh := s.Shapes[i]
	if sh.Kind != KindComposite || int(sh.Index) >= len(s.Composites) {
		return
	}
	c := s.Composites[sh.Index]
	s.mark(c.A, seen)
	s.mark(c.B, seen)
}

// Validate checks the invariants a consumer relies on:
//   - the header count equals the number of shape records
//   - every shape's table index is in range for its kind
//   - every composite operand precedes the shape that references it
//   - every operator tag is defined
//   - every non-root shape is reachable from some root
//
// Violations are reported as ErrInvalidFrame.
func (s *Snapshot) Validate() error {
	if int(s.Count) != len(s.Shapes) {
		return fmt.Errorf("%w: header count %d, %d shape records", ErrInvalidFrame, s.Count, len(s.Shapes))
	}
	for i, sh := range s.Shapes {
		var size int
		switch sh.Kind {
		case KindSphere:
			size = len(s.Spheres)
		case KindCuboid:
			size = len(s.Cuboids)
		case KindComposite:
			size = len(s.Composites)
		default:
			return fmt.Errorf("%w: shape %d has unknown kind %d", ErrInvalidFrame, i, sh.Kind)
		}
		if int(sh.Index) >= size {
			return fmt.Errorf("%w: shape %d (%s) points at %d, table has %d entries",
				ErrInvalidFrame, i, sh.Kind, sh.Index, size)
		}
		if sh.Kind != KindComposite {
			continue
		}
		c := s.Composites[sh.Index]
		if !c.Op.Valid() {
			return fmt.Errorf("%w: composite %d has unknown operator %d", ErrInvalidFrame, sh.Index, c.Op)
		}
		if int(c.A) >= i || int(c.B) >= i {
			return fmt.Errorf("%w: shape %d references operands (%d, %d) that do not precede it",
				ErrInvalidFrame, i, c.A, c.B)
		}
	}

	reachable := roaring.New()
	for _, r := range s.Roots() {
		s.mark(r, reachable)
	}
	all := roaring.New()
	all.AddRange(0, uint64(len(s.Shapes)))
	all.AndNot(reachable)
	if !all.IsEmpty() {
		return fmt.Errorf("%w: %d shape(s) unreachable from any root, first is %d",
			ErrInvalidFrame, all.GetCardinality(), all.Minimum())
	}
	return nil
}
