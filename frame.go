// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import "encoding/binary"

// Frame is the serialized form of a Collection: the count header followed
// by the four tables. Each table slice holds exactly the live records;
// sinks that keep capacity-sized buffers write them at offset 0.
type Frame struct {
	Header     []byte
	Shapes     []byte
	Spheres    []byte
	Cuboids    []byte
	Composites []byte
}

// Count returns the shape count stored in the header.
func (f *Frame) Count() uint32 {
	if len(f.Header) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(f.Header)
}

// Size returns the total number of bytes in the frame.
func (f *Frame) Size() int {
	return len(f.Header) + len(f.Shapes) + len(f.Spheres) + len(f.Cuboids) + len(f.Composites)
}

// Frame serializes the current tables. It does not touch the dirty flag.
func (c *Collection) Frame() *Frame {
	return &Frame{
		Header:     encodeHeader(len(c.shapes)),
		Shapes:     encodeShapes(c.shapes),
		Spheres:    encodeSpheres(c.spheres),
		Cuboids:    encodeCuboids(c.cuboids),
		Composites: encodeComposites(c.composites),
	}
}
