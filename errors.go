// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is matched by every *CapacityError.
	ErrCapacityExceeded = errors.New("csg: table capacity exceeded")

	// ErrNoSink is returned by Sync when there is nothing to write to.
	ErrNoSink = errors.New("csg: no sink to synchronize to")

	// ErrNilDescriptor is returned when a descriptor tree contains a nil node.
	ErrNilDescriptor = errors.New("csg: nil descriptor")

	// ErrInvalidReference is returned when a Ref leaf names a shape that does
	// not exist yet, or when a Ref is submitted as the whole tree.
	ErrInvalidReference = errors.New("csg: invalid shape reference")

	// ErrMalformedFrame is returned when frame bytes do not match the layout.
	ErrMalformedFrame = errors.New("csg: malformed frame")

	// ErrInvalidFrame is returned when a decoded frame violates a table invariant.
	ErrInvalidFrame = errors.New("csg: invalid frame")
)

// Table names a fixed-capacity table of a Collection.
type Table string

// Table names used in CapacityError.
const (
	TableShapes     Table = "shapes"
	TableSpheres    Table = "spheres"
	TableCuboids    Table = "cuboids"
	TableComposites Table = "composites"
)

// CapacityError reports an insertion rejected because a table is full.
// The Collection is left unchanged.
type CapacityError struct {
	Table    Table
	Capacity int
	Need     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("csg: %s table full: need %d entries, capacity %d", e.Table, e.Need, e.Capacity)
}

// Is reports whether target is ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
