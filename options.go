// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

// DefaultTableCapacity is the per-table capacity used when no option is given.
const DefaultTableCapacity = 32

// Capacity holds the fixed maximum entry count of every table.
type Capacity struct {
	Shapes     int
	Spheres    int
	Cuboids    int
	Composites int
}

// DefaultCapacity returns DefaultTableCapacity for every table.
func DefaultCapacity() Capacity {
	return Capacity{
		Shapes:     DefaultTableCapacity,
		Spheres:    DefaultTableCapacity,
		Cuboids:    DefaultTableCapacity,
		Composites: DefaultTableCapacity,
	}
}

// of returns the capacity of table t.
func (c Capacity) of(t Table) int {
	switch t {
	case TableShapes:
		return c.Shapes
	case TableSpheres:
		return c.Spheres
	case TableCuboids:
		return c.Cuboids
	case TableComposites:
		return c.Composites
	default:
		return 0
	}
}

// Option configures a Collection during creation.
//
// Example:
//
//	c := csg.NewCollection(
//	    csg.WithCapacity(csg.DefaultCapacity()),
//	    csg.WithShapeCapacity(128),
//	)
type Option func(*collectionOptions)

// collectionOptions holds optional configuration for Collection creation.
type collectionOptions struct {
	capacity Capacity
}

// defaultOptions returns the default collection options.
func defaultOptions() collectionOptions {
	return collectionOptions{capacity: DefaultCapacity()}
}

// WithCapacity replaces every table capacity at once.
// Negative values are treated as zero.
func WithCapacity(c Capacity) Option {
	return func(o *collectionOptions) {
		o.capacity = Capacity{
			Shapes:     nonNegative(c.Shapes),
			Spheres:    nonNegative(c.Spheres),
			Cuboids:    nonNegative(c.Cuboids),
			Composites: nonNegative(c.Composites),
		}
	}
}

// WithShapeCapacity sets the Shape Directory capacity.
func WithShapeCapacity(n int) Option {
	return func(o *collectionOptions) {
		o.capacity.Shapes = nonNegative(n)
	}
}

// WithSphereCapacity sets the sphere table capacity.
func WithSphereCapacity(n int) Option {
	return func(o *collectionOptions) {
		o.capacity.Spheres = nonNegative(n)
	}
}

// WithCuboidCapacity sets the cuboid table capacity.
func WithCuboidCapacity(n int) Option {
	return func(o *collectionOptions) {
		o.capacity.Cuboids = nonNegative(n)
	}
}

// WithCompositeCapacity sets the Composite Table capacity.
func WithCompositeCapacity(n int) Option {
	return func(o *collectionOptions) {
		o.capacity.Composites = nonNegative(n)
	}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
