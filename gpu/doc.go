// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu uploads csg scene tables into GPU buffers.
//
// A Store owns one uniform buffer for the frame header and four read-only
// storage buffers for the shape, sphere, cuboid and composite tables. It
// implements csg.Sink, so a Collection syncs straight into it:
//
//	store, err := gpu.NewStore(device, queue, csg.DefaultCapacity())
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	if err := scene.Sync(store); err != nil {
//		return err
//	}
//
// Shaders declare the matching bindings by including LayoutSource.
package gpu
