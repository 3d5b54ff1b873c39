// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"errors"
	"testing"
)

func validSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	c := NewCollection()
	_, _ = c.AddSphere(NewSphere(V3(0, 0, 30), 3), testMaterial)
	_, _ = c.CreateComposite(Union(sphereLeaf(0, 0, 0, 1), Intersection(cuboidLeaf(0, 0, 0), sphereLeaf(0, 0, 0, 1.2))))
	snap, err := DecodeFrame(c.Frame())
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestSnapshotValidate(t *testing.T) {
	if err := validSnapshot(t).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSnapshotValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"count mismatch", func(s *Snapshot) { s.Count++ }},
		{"unknown kind", func(s *Snapshot) { s.Shapes[0].Kind = 7 }},
		{"sphere index out of range", func(s *Snapshot) { s.Shapes[0].Index = 50 }},
		{"forward reference", func(s *Snapshot) { s.Composites[0].A = ShapeIndex(len(s.Shapes) - 1) }},
		{"unknown operator", func(s *Snapshot) { s.Composites[0].Op = 9 }},
		{"unreachable interior", func(s *Snapshot) {
			last := len(s.Shapes) - 1
			s.Shapes[last].Root = false
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot(t)
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidFrame) {
				t.Errorf("err = %v, want ErrInvalidFrame", err)
			}
		})
	}
}

func TestSnapshotSubtree(t *testing.T) {
	s := validSnapshot(t)
	roots := s.Roots()
	if len(roots) != 2 {
		t.Fatalf("Roots() = %v, want 2 roots", roots)
	}

	if got := s.Subtree(roots[0]).GetCardinality(); got != 1 {
		t.Errorf("sphere subtree size = %d, want 1", got)
	}
	// union(leaf, intersection(leaf, leaf)): 5 entries.
	sub := s.Subtree(roots[1])
	if got := sub.GetCardinality(); got != 5 {
		t.Errorf("composite subtree size = %d, want 5", got)
	}
	if sub.Contains(uint32(roots[0])) {
		t.Error("composite subtree contains the unrelated sphere")
	}
}

func TestSnapshotSubtreeOutOfRange(t *testing.T) {
	s := validSnapshot(t)
	if got := s.Subtree(ShapeIndex(len(s.Shapes))); !got.IsEmpty() {
		t.Errorf("Subtree(len) = %v, want empty", got.ToArray())
	}
	if got := (&Snapshot{}).Subtree(0); !got.IsEmpty() {
		t.Errorf("Subtree on empty snapshot = %v, want empty", got.ToArray())
	}
}

func TestSnapshotSubtreeUnvalidated(t *testing.T) {
	// Shape 0 points at a missing composite, shape 1 refers forward and
	// back to itself; neither may panic or loop.
	s := &Snapshot{
		Count: 3,
		Shapes: []Shape{
			{Kind: KindComposite, Index: 7, Root: true},
			{Kind: KindComposite, Index: 0, Root: true},
			{Kind: KindSphere, Index: 0},
		},
		Spheres:    []Sphere{NewSphere(V3(0, 0, 0), 1)},
		Composites: []Composite{{A: 1, B: 9, Op: OpUnion}},
	}

	if got := s.Subtree(0).GetCardinality(); got != 1 {
		t.Errorf("Subtree(0) size = %d, want 1", got)
	}
	sub := s.Subtree(1)
	if got := sub.ToArray(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Subtree(1) = %v, want [1]", got)
	}
	if s.Validate() == nil {
		t.Error("Validate accepted a snapshot with bad references")
	}
}
