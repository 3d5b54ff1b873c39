// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package csg maintains a scene of constructive solid geometry shapes for
// a compute-shader ray marcher.
//
// # Overview
//
// A Collection owns four fixed-capacity, append-only tables:
//   - spheres: center and radius
//   - cuboids: center, half-extents and rotation
//   - composites: two operand shape indices and an operator
//   - shapes: the Shape Directory, one record per shape of any kind
//
// Primitives are added directly with AddSphere and AddCuboid. Composite
// shapes are described as a Descriptor tree and flattened post-order by
// CreateComposite, so operands are always stored before the composite
// that uses them and the consumer never meets a forward reference.
//
// # Quick Start
//
//	c := csg.NewCollection()
//
//	red := csg.Material{Color: csg.Red, Reflectivity: 0.2}
//	c.AddSphere(csg.NewSphere(csg.V3(0, 0, 30), 3), red)
//
//	c.CreateComposite(csg.Union(
//	    csg.SphereLeaf(csg.NewSphere(csg.V3(0, 0, 30), 3), red),
//	    csg.SphereLeaf(csg.NewSphere(csg.V3(0, 4, 25), 1), red),
//	))
//
//	// Once per frame:
//	if err := c.Sync(store); err != nil {
//	    // handle error
//	}
//
// # Synchronization
//
// Every successful insertion marks the Collection dirty. Sync serializes
// the header and all four tables into a Frame and hands it to a Sink only
// when the Collection is dirty, so N edits in a frame cost one upload.
// The gpu subpackage provides a wgpu-backed Sink; the capture subpackage
// records frames to SQLite for offline inspection.
//
// # Layout
//
// Records are little-endian and padded to 16-byte multiples. See the
// stride constants in this package and gpu.LayoutSource for the matching
// WGSL declarations.
package csg
