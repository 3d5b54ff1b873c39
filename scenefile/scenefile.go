// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scenefile builds csg collections from YAML scene descriptions.
//
// A scene file lists top-level shapes, each of which becomes one root in
// the Shape Directory, followed by optional random scatter blocks:
//
//	capacity: {shapes: 64, spheres: 32, cuboids: 32, composites: 32}
//	seed: 7
//	shapes:
//	  - sphere: {center: [0, 0, 30], radius: 3}
//	    material: {color: tomato, reflectivity: 0.2}
//	  - blend:
//	      - sphere: {center: [0, 0, 30], radius: 3}
//	      - cuboid: {center: [0, 4, 25], extents: [1, 1, 1], rotation: [0, 0.5, 0]}
//	    k: 0.5
//	  - difference:
//	      - ref: 1
//	      - sphere: {center: [0, 2, 28], radius: 1}
//	random:
//	  - kind: cuboid
//	    count: 10
//	    min: [-5, -5, 20]
//	    max: [5, 5, 40]
//	    minSize: [0.5, 0.5, 0.5]
//	    maxSize: [1, 1, 1]
//
// Colors are "#rgb", "#rrggbb" or CSS color names. A material without a
// color draws one from the scene's seeded generator, so a file always
// builds the same collection.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/gogpu/csg"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("scenefile: invalid scene")

// Vec is a YAML [x, y, z] triple.
type Vec [3]float32

func (v Vec) vec3() csg.Vec3 { return csg.V3(v[0], v[1], v[2]) }

// Capacity overrides table capacities. Zero keeps the default.
type Capacity struct {
	Shapes     int `yaml:"shapes,omitempty"`
	Spheres    int `yaml:"spheres,omitempty"`
	Cuboids    int `yaml:"cuboids,omitempty"`
	Composites int `yaml:"composites,omitempty"`
}

// File is a parsed scene file.
type File struct {
	Capacity Capacity  `yaml:"capacity,omitempty"`
	Seed     *uint64   `yaml:"seed,omitempty"`
	Shapes   []Node    `yaml:"shapes"`
	Random   []Scatter `yaml:"random,omitempty"`
}

// Sphere describes a sphere leaf.
type Sphere struct {
	Center Vec     `yaml:"center"`
	Radius float32 `yaml:"radius"`
}

// Cuboid describes a cuboid leaf. Rotation holds Euler angles in radians.
type Cuboid struct {
	Center   Vec  `yaml:"center"`
	Extents  Vec  `yaml:"extents"`
	Rotation *Vec `yaml:"rotation,omitempty"`
}

// Material describes a leaf's surface.
type Material struct {
	Color        string  `yaml:"color,omitempty"`
	Reflectivity float32 `yaml:"reflectivity,omitempty"`
}

// Node is one entry of a shape tree. Exactly one of Sphere, Cuboid, Ref
// or an operator list must be set; operator lists hold two children.
type Node struct {
	Sphere       *Sphere   `yaml:"sphere,omitempty"`
	Cuboid       *Cuboid   `yaml:"cuboid,omitempty"`
	Ref          *uint32   `yaml:"ref,omitempty"`
	Union        []Node    `yaml:"union,omitempty"`
	Intersection []Node    `yaml:"intersection,omitempty"`
	Difference   []Node    `yaml:"difference,omitempty"`
	Blend        []Node    `yaml:"blend,omitempty"`
	K            float32   `yaml:"k,omitempty"`
	Material     *Material `yaml:"material,omitempty"`
}

// Scatter places Count random primitives inside the box [Min, Max).
type Scatter struct {
	Kind         string   `yaml:"kind"`
	Count        int      `yaml:"count"`
	Min          Vec      `yaml:"min"`
	Max          Vec      `yaml:"max"`
	MinSize      Vec      `yaml:"minSize,omitempty"`
	MaxSize      Vec      `yaml:"maxSize,omitempty"`
	MinRadius    float32  `yaml:"minRadius,omitempty"`
	MaxRadius    float32  `yaml:"maxRadius,omitempty"`
	MaxRotation  *Vec     `yaml:"maxRotation,omitempty"`
	Reflectivity float32  `yaml:"reflectivity,omitempty"`
	Colors       []string `yaml:"colors,omitempty"`
}

// Load reads and parses the scene file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene from YAML and checks its structure. Unknown keys
// are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenefile: parse: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) check() error {
	for i := range f.Shapes {
		if err := f.Shapes[i].check(fmt.Sprintf("shapes[%d]", i)); err != nil {
			return err
		}
	}
	for i, s := range f.Random {
		if err := s.check(fmt.Sprintf("random[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidScene, path, fmt.Sprintf(format, args...))
}

// operator returns the operator list that is set, if any.
func (n *Node) operator() (csg.Operator, []Node, string, bool) {
	switch {
	case n.Union != nil:
		return csg.OpUnion, n.Union, "union", true
	case n.Intersection != nil:
		return csg.OpIntersection, n.Intersection, "intersection", true
	case n.Difference != nil:
		return csg.OpDifference, n.Difference, "difference", true
	case n.Blend != nil:
		return csg.OpBlend, n.Blend, "blend", true
	}
	return 0, nil, "", false
}

func (n *Node) check(path string) error {
	set := 0
	for _, ok := range []bool{
		n.Sphere != nil, n.Cuboid != nil, n.Ref != nil,
		n.Union != nil, n.Intersection != nil, n.Difference != nil, n.Blend != nil,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return invalid(path, "node needs exactly one of sphere, cuboid, ref, union, intersection, difference, blend (has %d)", set)
	}

	op, children, name, isOp := n.operator()
	if !isOp {
		if n.K != 0 {
			return invalid(path, "k is only valid on blend")
		}
		if n.Ref != nil && n.Material != nil {
			return invalid(path, "ref cannot carry a material")
		}
		if n.Material != nil && n.Material.Color != "" {
			if _, err := parseColor(n.Material.Color); err != nil {
				return invalid(path, "%v", err)
			}
		}
		return nil
	}
	if n.Material != nil {
		return invalid(path, "%s cannot carry a material", name)
	}
	if n.K != 0 && op != csg.OpBlend {
		return invalid(path, "k is only valid on blend")
	}
	if len(children) != 2 {
		return invalid(path, "%s needs 2 operands, got %d", name, len(children))
	}
	for i := range children {
		if err := children[i].check(fmt.Sprintf("%s.%s[%d]", path, name, i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scatter) check(path string) error {
	switch s.Kind {
	case "sphere", "cuboid":
	default:
		return invalid(path, "unknown kind %q", s.Kind)
	}
	if s.Count < 0 {
		return invalid(path, "negative count %d", s.Count)
	}
	for _, c := range s.Colors {
		if _, err := parseColor(c); err != nil {
			return invalid(path, "%v", err)
		}
	}
	return nil
}

// Build creates a collection holding the scene. Capacities from the file
// apply first; opts override them. A File assembled in Go is checked the
// same way Parse checks decoded input.
func (f *File) Build(opts ...csg.Option) (*csg.Collection, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	all := make([]csg.Option, 0, len(opts)+4)
	for _, o := range []struct {
		n   int
		opt func(int) csg.Option
	}{
		{f.Capacity.Shapes, csg.WithShapeCapacity},
		{f.Capacity.Spheres, csg.WithSphereCapacity},
		{f.Capacity.Cuboids, csg.WithCuboidCapacity},
		{f.Capacity.Composites, csg.WithCompositeCapacity},
	} {
		if o.n > 0 {
			all = append(all, o.opt(o.n))
		}
	}
	all = append(all, opts...)

	seed := uint64(csg.DefaultSeed)
	if f.Seed != nil {
		seed = *f.Seed
	}
	b := &builder{
		c: csg.NewCollection(all...),
		r: csg.NewRand(seed),
	}

	for i := range f.Shapes {
		if err := b.addRoot(&f.Shapes[i], fmt.Sprintf("shapes[%d]", i)); err != nil {
			return nil, err
		}
	}
	for i := range f.Random {
		if err := b.scatter(&f.Random[i], fmt.Sprintf("random[%d]", i)); err != nil {
			return nil, err
		}
	}

	counts := b.c.Counts()
	csg.Logger().Debug("scenefile: built",
		"seed", seed,
		"shapes", counts.Shapes,
		"roots", len(b.c.Roots()))
	return b.c, nil
}

type builder struct {
	c *csg.Collection
	r *rand.Rand
}

func (b *builder) addRoot(n *Node, path string) error {
	var err error
	switch {
	case n.Sphere != nil:
		_, err = b.c.AddSphere(n.Sphere.sphere(), b.material(n.Material))
	case n.Cuboid != nil:
		_, err = b.c.AddCuboid(n.Cuboid.cuboid(), b.material(n.Material))
	default:
		var d csg.Descriptor
		if d, err = b.descriptor(n, path); err == nil {
			_, err = b.c.CreateComposite(d)
		}
	}
	if err != nil {
		return fmt.Errorf("scenefile: %s: %w", path, err)
	}
	return nil
}

func (b *builder) descriptor(n *Node, path string) (csg.Descriptor, error) {
	switch {
	case n.Sphere != nil:
		return csg.SphereLeaf(n.Sphere.sphere(), b.material(n.Material)), nil
	case n.Cuboid != nil:
		return csg.CuboidLeaf(n.Cuboid.cuboid(), b.material(n.Material)), nil
	case n.Ref != nil:
		if int(*n.Ref) >= b.c.Len() {
			return nil, invalid(path, "ref %d is not an existing shape (have %d)", *n.Ref, b.c.Len())
		}
		return csg.Ref(csg.ShapeIndex(*n.Ref)), nil
	}

	op, children, name, _ := n.operator()
	left, err := b.descriptor(&children[0], fmt.Sprintf("%s.%s[0]", path, name))
	if err != nil {
		return nil, err
	}
	right, err := b.descriptor(&children[1], fmt.Sprintf("%s.%s[1]", path, name))
	if err != nil {
		return nil, err
	}
	switch op {
	case csg.OpIntersection:
		return csg.Intersection(left, right), nil
	case csg.OpDifference:
		return csg.Difference(left, right), nil
	case csg.OpBlend:
		return csg.Blend(left, right, n.K), nil
	default:
		return csg.Union(left, right), nil
	}
}

func (b *builder) scatter(s *Scatter, path string) error {
	for i := range s.Count {
		m := csg.Material{Reflectivity: s.Reflectivity}
		if len(s.Colors) > 0 {
			m.Color, _ = parseColor(s.Colors[b.r.IntN(len(s.Colors))])
		} else {
			m.Color = csg.RandomColor(b.r)
		}

		var err error
		switch s.Kind {
		case "sphere":
			sp := csg.RandomSphere(b.r, s.Min.vec3(), s.Max.vec3(), s.MinRadius, s.MaxRadius)
			_, err = b.c.AddSphere(sp, m)
		default:
			cb := csg.RandomCuboid(b.r, s.Min.vec3(), s.Max.vec3(), s.MinSize.vec3(), s.MaxSize.vec3())
			if s.MaxRotation != nil {
				hi := s.MaxRotation.vec3()
				euler := csg.RandomVec3(b.r, hi.Mul(-1), hi)
				cb = csg.NewRotatedCuboid(cb.Center, cb.Extents, euler)
			}
			_, err = b.c.AddCuboid(cb, m)
		}
		if err != nil {
			return fmt.Errorf("scenefile: %s #%d: %w", path, i, err)
		}
	}
	return nil
}

// material resolves m, drawing a random color when none is given.
func (b *builder) material(m *Material) csg.Material {
	if m == nil {
		return csg.RandomMaterial(b.r, 0)
	}
	out := csg.Material{Reflectivity: m.Reflectivity}
	if m.Color == "" {
		out.Color = csg.RandomColor(b.r)
	} else {
		out.Color, _ = parseColor(m.Color) // checked by Parse
	}
	return out
}

func (s *Sphere) sphere() csg.Sphere {
	return csg.NewSphere(s.Center.vec3(), s.Radius)
}

func (c *Cuboid) cuboid() csg.Cuboid {
	if c.Rotation == nil {
		return csg.NewCuboid(c.Center.vec3(), c.Extents.vec3())
	}
	return csg.NewRotatedCuboid(c.Center.vec3(), c.Extents.vec3(), c.Rotation.vec3())
}

// parseColor accepts hex notation or a CSS color name.
func parseColor(s string) (csg.Color, error) {
	if strings.HasPrefix(s, "#") {
		return csg.ParseHex(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return csg.FromColor(c), nil
	}
	return csg.ParseHex(s)
}
