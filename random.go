// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import "math/rand/v2"

// DefaultSeed seeds NewRand when a scene does not choose its own seed.
const DefaultSeed = 42

// NewRand returns a PCG-backed generator seeded with seed. Scene
// generation always takes an explicit generator so it is reproducible.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// uniform draws from [lo, hi). When hi <= lo it returns lo.
func uniform(r *rand.Rand, lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float32()*(hi-lo)
}

// RandomVec3 draws each component uniformly between the matching
// components of lo and hi.
func RandomVec3(r *rand.Rand, lo, hi Vec3) Vec3 {
	return Vec3{
		X: uniform(r, lo.X, hi.X),
		Y: uniform(r, lo.Y, hi.Y),
		Z: uniform(r, lo.Z, hi.Z),
	}
}

// RandomCuboid returns an axis-aligned cuboid with its center drawn from
// the box [minPos, maxPos) and its half-extents from [minSize, maxSize).
func RandomCuboid(r *rand.Rand, minPos, maxPos, minSize, maxSize Vec3) Cuboid {
	center := RandomVec3(r, minPos, maxPos)
	extents := RandomVec3(r, minSize, maxSize)
	return NewCuboid(center, extents)
}

// RandomSphere returns a sphere with its center drawn from [minPos, maxPos)
// and its radius from [minRadius, maxRadius).
func RandomSphere(r *rand.Rand, minPos, maxPos Vec3, minRadius, maxRadius float32) Sphere {
	center := RandomVec3(r, minPos, maxPos)
	return NewSphere(center, uniform(r, minRadius, maxRadius))
}

// RandomMaterial returns a random color with the given reflectivity.
func RandomMaterial(r *rand.Rand, reflectivity float32) Material {
	return Material{Color: RandomColor(r), Reflectivity: reflectivity}
}
