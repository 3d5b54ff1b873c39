// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func u32At(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func TestStridesAreAligned(t *testing.T) {
	for name, stride := range map[string]int{
		"header":    HeaderSize,
		"shape":     ShapeStride,
		"sphere":    SphereStride,
		"cuboid":    CuboidStride,
		"composite": CompositeStride,
	} {
		if stride%16 != 0 {
			t.Errorf("%s stride %d is not a multiple of 16", name, stride)
		}
	}
}

func TestFrameLayout(t *testing.T) {
	c := NewCollection()
	red := Material{Color: RGB(1, 0, 0), Reflectivity: 0.5}
	_, _ = c.AddSphere(NewSphere(V3(0, 0, 30), 3), red)
	_, _ = c.AddCuboid(NewRotatedCuboid(V3(1, 2, 3), V3(4, 5, 6), V3(0, 0, math.Pi/2)), red)
	_, _ = c.CreateComposite(Blend(Ref(0), Ref(1), 0.5))

	f := c.Frame()

	if len(f.Header) != HeaderSize || f.Count() != 3 {
		t.Fatalf("header = %v", f.Header)
	}
	if len(f.Shapes) != 3*ShapeStride || len(f.Spheres) != SphereStride ||
		len(f.Cuboids) != CuboidStride || len(f.Composites) != CompositeStride {
		t.Fatalf("table sizes = %d %d %d %d", len(f.Shapes), len(f.Spheres), len(f.Cuboids), len(f.Composites))
	}
	if f.Size() != HeaderSize+3*ShapeStride+SphereStride+CuboidStride+CompositeStride {
		t.Errorf("Size() = %d", f.Size())
	}

	// Shape 1: red cuboid, root.
	s := f.Shapes[ShapeStride:]
	if f32At(s, 0) != 1 || f32At(s, 4) != 0 || f32At(s, 8) != 0 {
		t.Errorf("shape color = %v %v %v", f32At(s, 0), f32At(s, 4), f32At(s, 8))
	}
	if u32At(s, 12) != 0 || u32At(s, 16) != uint32(KindCuboid) {
		t.Errorf("shape index/type = %d/%d", u32At(s, 12), u32At(s, 16))
	}
	if f32At(s, 20) != 0.5 || u32At(s, 24) != 1 || u32At(s, 28) != 0 {
		t.Errorf("shape reflectivity/visible/pad = %v/%d/%d", f32At(s, 20), u32At(s, 24), u32At(s, 28))
	}

	// Shape 2: blend composite, root, sentinel material.
	s = f.Shapes[2*ShapeStride:]
	if u32At(s, 16) != uint32(KindComposite) || u32At(s, 24) != 1 || f32At(s, 0) != 0 {
		t.Errorf("composite shape record = % x", s[:ShapeStride])
	}

	if f32At(f.Spheres, 8) != 30 || f32At(f.Spheres, 12) != 3 {
		t.Errorf("sphere = % x", f.Spheres)
	}

	cb := f.Cuboids
	if f32At(cb, 0) != 1 || f32At(cb, 4) != 2 || f32At(cb, 8) != 3 || f32At(cb, 12) != 0 {
		t.Errorf("cuboid position = % x", cb[:16])
	}
	if f32At(cb, 16) != 4 || f32At(cb, 20) != 5 || f32At(cb, 24) != 6 || f32At(cb, 28) != 0 {
		t.Errorf("cuboid scaling = % x", cb[16:32])
	}
	// Row 1 of a 90 degree z rotation is (1, 0, 0, 0).
	if math.Abs(float64(f32At(cb, 48)-1)) > 1e-6 || f32At(cb, 60) != 0 {
		t.Errorf("cuboid rotation row 1 = % x", cb[48:64])
	}

	cp := f.Composites
	if u32At(cp, 0) != 0 || u32At(cp, 4) != 1 || u32At(cp, 8) != uint32(OpBlend) || f32At(cp, 12) != 0.5 {
		t.Errorf("composite = % x", cp)
	}
}

func TestDecodeFrameRoundTrip(t *testing.T) {
	c := NewCollection()
	_, _ = c.AddSphere(NewSphere(V3(0, 0, 30), 3), testMaterial)
	_, _ = c.CreateComposite(Difference(
		CuboidLeaf(NewRotatedCuboid(V3(0, 0, 20), V3(2, 2, 2), V3(0.3, 0.2, 0.1)), testMaterial),
		sphereLeaf(0, 0, 20, 2.5),
	))

	snap, err := DecodeFrame(c.Frame())
	if err != nil {
		t.Fatal(err)
	}
	if int(snap.Count) != c.Len() || len(snap.Shapes) != c.Len() {
		t.Fatalf("decoded %d/%d shapes, want %d", snap.Count, len(snap.Shapes), c.Len())
	}
	for i, got := range snap.Shapes {
		want, _ := c.Shape(ShapeIndex(i))
		if got != want {
			t.Errorf("shape %d = %+v, want %+v", i, got, want)
		}
	}
	if want, _ := c.Cuboid(0); snap.Cuboids[0] != want {
		t.Errorf("cuboid = %+v, want %+v", snap.Cuboids[0], want)
	}
	if want, _ := c.Composite(0); snap.Composites[0] != want {
		t.Errorf("composite = %+v, want %+v", snap.Composites[0], want)
	}
}

func TestDecodeFrameMalformed(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{"nil", nil},
		{"short header", &Frame{Header: []byte{1, 0}}},
		{"ragged shapes", &Frame{Header: make([]byte, HeaderSize), Shapes: make([]byte, ShapeStride+3)}},
		{"ragged cuboids", &Frame{Header: make([]byte, HeaderSize), Cuboids: make([]byte, 48)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.frame); !errors.Is(err, ErrMalformedFrame) {
				t.Errorf("err = %v, want ErrMalformedFrame", err)
			}
		})
	}
}
