// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import "fmt"

// Collection owns the primitive tables, the Composite Table and the Shape
// Directory of one scene, plus the dirty flag that gates Sync.
//
// Tables are append-only: an index handed out by the Collection stays
// valid for its whole lifetime, and composite records only ever refer to
// shapes created before them. Every table has a fixed capacity; an
// insertion that would exceed it fails with a *CapacityError and leaves
// the Collection unchanged.
//
// Collection is NOT safe for concurrent use. Mutate and sync a Collection
// from a single goroutine, or use external synchronization.
type Collection struct {
	shapes     []Shape
	spheres    []Sphere
	cuboids    []Cuboid
	composites []Composite

	capacity Capacity
	dirty    bool
}

// NewCollection creates an empty Collection with zeroed tables.
func NewCollection(opts ...Option) *Collection {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection{
		shapes:     make([]Shape, 0, o.capacity.Shapes),
		spheres:    make([]Sphere, 0, o.capacity.Spheres),
		cuboids:    make([]Cuboid, 0, o.capacity.Cuboids),
		composites: make([]Composite, 0, o.capacity.Composites),
		capacity:   o.capacity,
	}
}

// AddSphere inserts a sphere and a root Shape record for it.
// It returns the Shape Directory index of the new record.
func (c *Collection) AddSphere(s Sphere, m Material) (ShapeIndex, error) {
	if err := c.reserve(demand{shapes: 1, spheres: 1}); err != nil {
		return 0, err
	}
	return c.appendPrimitiveShape(KindSphere, c.addSphere(s), m, true), nil
}

// AddCuboid inserts a cuboid and a root Shape record for it.
// It returns the Shape Directory index of the new record.
func (c *Collection) AddCuboid(b Cuboid, m Material) (ShapeIndex, error) {
	if err := c.reserve(demand{shapes: 1, cuboids: 1}); err != nil {
		return 0, err
	}
	return c.appendPrimitiveShape(KindCuboid, c.addCuboid(b), m, true), nil
}

// CreateComposite flattens d into the tables and returns the Shape
// Directory index of its outermost node, the only new record marked root.
//
// The tree is validated and its table demand checked before anything is
// inserted, so on error the Collection is unchanged. The returned index can
// be used in a Ref leaf to build further composites on top of this one.
func (c *Collection) CreateComposite(d Descriptor) (ShapeIndex, error) {
	if _, ok := value(d).(RefNode); ok {
		return 0, fmt.Errorf("%w: a reference cannot be submitted on its own", ErrInvalidReference)
	}
	var need demand
	if err := c.plan(d, &need); err != nil {
		return 0, err
	}
	if err := c.reserve(need); err != nil {
		return 0, err
	}
	return c.flatten(d, true), nil
}

// demand counts the new entries an insertion needs per table.
type demand struct {
	shapes, spheres, cuboids, composites int
}

// reserve fails if any table cannot take its share of d.
func (c *Collection) reserve(d demand) error {
	checks := [...]struct {
		table Table
		have  int
		need  int
	}{
		{TableShapes, len(c.shapes), d.shapes},
		{TableSpheres, len(c.spheres), d.spheres},
		{TableCuboids, len(c.cuboids), d.cuboids},
		{TableComposites, len(c.composites), d.composites},
	}
	for _, ck := range checks {
		if ck.need == 0 {
			continue
		}
		if limit := c.capacity.of(ck.table); ck.have+ck.need > limit {
			return &CapacityError{Table: ck.table, Capacity: limit, Need: ck.have + ck.need}
		}
	}
	return nil
}

// plan validates d and accumulates its table demand without mutating c.
func (c *Collection) plan(d Descriptor, need *demand) error {
	switch n := value(d).(type) {
	case nil:
		return ErrNilDescriptor
	case SphereNode:
		need.shapes++
		need.spheres++
	case CuboidNode:
		need.shapes++
		need.cuboids++
	case RefNode:
		if int(n.Index) >= len(c.shapes) {
			return fmt.Errorf("%w: shape %d does not exist (directory has %d entries)",
				ErrInvalidReference, n.Index, len(c.shapes))
		}
	case OpNode:
		if !n.Op.Valid() {
			panic(fmt.Sprintf("csg: descriptor with undefined operator %d", n.Op))
		}
		need.shapes++
		need.composites++
		if err := c.plan(n.Left, need); err != nil {
			return err
		}
		return c.plan(n.Right, need)
	default:
		panic(fmt.Sprintf("csg: unknown descriptor variant %T", d))
	}
	return nil
}

// flatten inserts d post-order and returns its Shape Directory index.
// Only the caller decides isRoot for d itself; every child is flattened
// as a non-root entry. Children are always inserted before their parent.
func (c *Collection) flatten(d Descriptor, isRoot bool) ShapeIndex {
	switch n := value(d).(type) {
	case SphereNode:
		return c.appendPrimitiveShape(KindSphere, c.addSphere(n.Sphere), n.Material, isRoot)
	case CuboidNode:
		return c.appendPrimitiveShape(KindCuboid, c.addCuboid(n.Cuboid), n.Material, isRoot)
	case RefNode:
		return n.Index
	case OpNode:
		a := c.flatten(n.Left, false)
		b := c.flatten(n.Right, false)
		blend := n.Blend
		if n.Op != OpBlend {
			blend = NeutralBlend
		}
		return c.appendCompositeShape(c.addComposite(a, b, n.Op, blend), isRoot)
	default:
		panic(fmt.Sprintf("csg: unknown descriptor variant %T", d))
	}
}

func (c *Collection) addSphere(s Sphere) PrimitiveIndex {
	i := PrimitiveIndex(len(c.spheres)) //nolint:gosec // bounded by capacity
	c.spheres = append(c.spheres, s)
	c.dirty = true
	return i
}

func (c *Collection) addCuboid(b Cuboid) PrimitiveIndex {
	i := PrimitiveIndex(len(c.cuboids)) //nolint:gosec // bounded by capacity
	c.cuboids = append(c.cuboids, b)
	c.dirty = true
	return i
}

func (c *Collection) addComposite(a, b ShapeIndex, op Operator, blend float32) CompositeIndex {
	i := CompositeIndex(len(c.composites)) //nolint:gosec // bounded by capacity
	c.composites = append(c.composites, Composite{A: a, B: b, Op: op, Blend: blend})
	c.dirty = true
	return i
}

func (c *Collection) appendPrimitiveShape(kind ShapeKind, i PrimitiveIndex, m Material, isRoot bool) ShapeIndex {
	return c.appendShape(Shape{Material: m, Kind: kind, Index: uint32(i), Root: isRoot})
}

func (c *Collection) appendCompositeShape(i CompositeIndex, isRoot bool) ShapeIndex {
	return c.appendShape(Shape{Material: compositeMaterial, Kind: KindComposite, Index: uint32(i), Root: isRoot})
}

func (c *Collection) appendShape(s Shape) ShapeIndex {
	i := ShapeIndex(len(c.shapes)) //nolint:gosec // bounded by capacity
	c.shapes = append(c.shapes, s)
	c.dirty = true
	return i
}

// Counts holds the live entry count of every table.
type Counts struct {
	Shapes     int
	Spheres    int
	Cuboids    int
	Composites int
}

// Counts returns the current length of every table.
func (c *Collection) Counts() Counts {
	return Counts{
		Shapes:     len(c.shapes),
		Spheres:    len(c.spheres),
		Cuboids:    len(c.cuboids),
		Composites: len(c.composites),
	}
}

// Len returns the number of Shape Directory entries.
func (c *Collection) Len() int {
	return len(c.shapes)
}

// Capacity returns the fixed table capacities.
func (c *Collection) Capacity() Capacity {
	return c.capacity
}

// Dirty reports whether any table changed since the last successful Sync.
func (c *Collection) Dirty() bool {
	return c.dirty
}

// Shape returns the Shape Directory entry at i.
func (c *Collection) Shape(i ShapeIndex) (Shape, bool) {
	if int(i) >= len(c.shapes) {
		return Shape{}, false
	}
	return c.shapes[i], true
}

// Sphere returns the sphere table entry at i.
func (c *Collection) Sphere(i PrimitiveIndex) (Sphere, bool) {
	if int(i) >= len(c.spheres) {
		return Sphere{}, false
	}
	return c.spheres[i], true
}

// Cuboid returns the cuboid table entry at i.
func (c *Collection) Cuboid(i PrimitiveIndex) (Cuboid, bool) {
	if int(i) >= len(c.cuboids) {
		return Cuboid{}, false
	}
	return c.cuboids[i], true
}

// Composite returns the Composite Table entry at i.
func (c *Collection) Composite(i CompositeIndex) (Composite, bool) {
	if int(i) >= len(c.composites) {
		return Composite{}, false
	}
	return c.composites[i], true
}

// Roots returns the indices of all root entries in directory order.
func (c *Collection) Roots() []ShapeIndex {
	var roots []ShapeIndex
	for i, s := range c.shapes {
		if s.Root {
			roots = append(roots, ShapeIndex(i)) //nolint:gosec // bounded by capacity
		}
	}
	return roots
}
