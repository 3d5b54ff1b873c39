// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/csg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrFrameTooLarge is returned when a frame does not fit the buffers
	// allocated for the store's capacity.
	ErrFrameTooLarge = errors.New("gpu: frame exceeds buffer capacity")

	// ErrClosed is returned when writing to a closed store.
	ErrClosed = errors.New("gpu: store is closed")

	// ErrNoHalAccess is returned when a device provider does not expose
	// its HAL device and queue.
	ErrNoHalAccess = errors.New("gpu: provider does not expose HAL types")
)

// table describes one GPU buffer backing a frame section.
type table struct {
	label   string
	binding uint32
	stride  uint64
	usage   gputypes.BufferUsage
	kind    gputypes.BufferBindingType
}

// tables lists the buffers in binding order.
var tables = [...]table{
	{"csg_header", BindingHeader, csg.HeaderSize, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst, gputypes.BufferBindingTypeUniform},
	{"csg_shapes", BindingShapes, csg.ShapeStride, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst, gputypes.BufferBindingTypeReadOnlyStorage},
	{"csg_spheres", BindingSpheres, csg.SphereStride, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst, gputypes.BufferBindingTypeReadOnlyStorage},
	{"csg_cuboids", BindingCuboids, csg.CuboidStride, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst, gputypes.BufferBindingTypeReadOnlyStorage},
	{"csg_composites", BindingComposites, csg.CompositeStride, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst, gputypes.BufferBindingTypeReadOnlyStorage},
}

// Store is a csg.Sink that keeps the scene tables in GPU buffers.
//
// Buffers are allocated once, sized capacity x stride, and bound in a
// single bind group visible to compute shaders (see LayoutSource). Each
// WriteFrame uploads the live records at offset 0; stale records past the
// live count are never read because the header carries the count.
//
// Store is NOT safe for concurrent use; it is owned by the goroutine that
// syncs the Collection.
type Store struct {
	device hal.Device
	queue  hal.Queue

	buffers [len(tables)]hal.Buffer
	sizes   [len(tables)]uint64

	bindLayout hal.BindGroupLayout
	bindGroup  hal.BindGroup

	writes         int
	closed         bool
	externalDevice bool // device comes from a provider, never destroyed here
}

var _ csg.Sink = (*Store)(nil)

// NewStore allocates the scene buffers on device for the given capacity.
func NewStore(device hal.Device, queue hal.Queue, capacity csg.Capacity) (*Store, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: nil device or queue")
	}
	s := &Store{device: device, queue: queue}
	if err := s.createResources(capacity); err != nil {
		s.destroyResources()
		return nil, err
	}
	csg.Logger().Info("gpu: scene store created",
		"shapes", capacity.Shapes,
		"spheres", capacity.Spheres,
		"cuboids", capacity.Cuboids,
		"composites", capacity.Composites)
	return s, nil
}

// NewStoreFromProvider creates a Store on a device shared with an external
// provider (e.g., gogpu). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. Close leaves the
// shared device alone.
func NewStoreFromProvider(provider gpucontext.DeviceProvider, capacity csg.Capacity) (*Store, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalAccess)
	}
	s, err := NewStore(device, queue, capacity)
	if err != nil {
		return nil, err
	}
	s.externalDevice = true
	return s, nil
}

func (s *Store) createResources(capacity csg.Capacity) error {
	counts := [len(tables)]int{1, capacity.Shapes, capacity.Spheres, capacity.Cuboids, capacity.Composites}

	layoutEntries := make([]gputypes.BindGroupLayoutEntry, 0, len(tables))
	groupEntries := make([]gputypes.BindGroupEntry, 0, len(tables))

	for i, t := range tables {
		// Zero-sized bindings are invalid, keep room for one record.
		size := uint64(max(counts[i], 1)) * t.stride //nolint:gosec // capacity is non-negative
		buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
			Label: t.label,
			Size:  size,
			Usage: t.usage,
		})
		if err != nil {
			return fmt.Errorf("gpu: create %s buffer: %w", t.label, err)
		}
		s.buffers[i] = buf
		s.sizes[i] = size
		csg.Logger().Debug("gpu: buffer allocated", "label", t.label, "bytes", size)

		layoutEntries = append(layoutEntries, gputypes.BindGroupLayoutEntry{
			Binding:    t.binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           t.kind,
				MinBindingSize: t.stride,
			},
		})
		groupEntries = append(groupEntries, gputypes.BindGroupEntry{
			Binding:  t.binding,
			Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: size},
		})
	}

	bindLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "csg_scene_bind_layout",
		Entries: layoutEntries,
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group layout: %w", err)
	}
	s.bindLayout = bindLayout

	bindGroup, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "csg_scene_bind",
		Layout:  s.bindLayout,
		Entries: groupEntries,
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	s.bindGroup = bindGroup
	return nil
}

// WriteFrame uploads f into the scene buffers. The whole frame is checked
// against the buffer sizes before anything is written.
func (s *Store) WriteFrame(f *csg.Frame) error {
	if s.closed {
		return ErrClosed
	}
	sections := [len(tables)][]byte{f.Header, f.Shapes, f.Spheres, f.Cuboids, f.Composites}
	for i, data := range sections {
		if uint64(len(data)) > s.sizes[i] {
			return fmt.Errorf("%w: %s needs %d bytes, buffer has %d",
				ErrFrameTooLarge, tables[i].label, len(data), s.sizes[i])
		}
	}
	for i, data := range sections {
		if len(data) == 0 {
			continue
		}
		s.queue.WriteBuffer(s.buffers[i], 0, data)
	}
	s.writes++
	csg.Logger().Debug("gpu: frame uploaded", "count", f.Count(), "bytes", f.Size())
	return nil
}

// BindGroupLayout returns the layout of the scene bind group, for building
// the consumer's pipeline layout.
func (s *Store) BindGroupLayout() hal.BindGroupLayout { return s.bindLayout }

// BindGroup returns the bind group holding the scene buffers.
func (s *Store) BindGroup() hal.BindGroup { return s.bindGroup }

// BufferSize returns the allocated size of the buffer at binding, or 0
// for an unknown binding.
func (s *Store) BufferSize(binding uint32) uint64 {
	if int(binding) >= len(s.sizes) {
		return 0
	}
	return s.sizes[binding]
}

// Writes returns the number of frames uploaded so far.
func (s *Store) Writes() int { return s.writes }

// Close releases the GPU resources. It is safe to call more than once.
func (s *Store) Close() {
	if s.closed {
		return
	}
	s.destroyResources()
	s.closed = true
	if s.externalDevice {
		csg.Logger().Debug("gpu: store closed, shared device kept")
	}
	s.device = nil
	s.queue = nil
}

func (s *Store) destroyResources() {
	if s.device == nil {
		return
	}
	if s.bindGroup != nil {
		s.device.DestroyBindGroup(s.bindGroup)
		s.bindGroup = nil
	}
	if s.bindLayout != nil {
		s.device.DestroyBindGroupLayout(s.bindLayout)
		s.bindLayout = nil
	}
	for i, buf := range s.buffers {
		if buf != nil {
			s.device.DestroyBuffer(buf)
			s.buffers[i] = nil
		}
	}
}
