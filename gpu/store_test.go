// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/csg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func smallCapacity() csg.Capacity {
	return csg.Capacity{Shapes: 8, Spheres: 4, Cuboids: 4, Composites: 4}
}

func TestNewStore(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewStore(device, queue, smallCapacity())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	if s.BindGroupLayout() == nil {
		t.Error("BindGroupLayout is nil")
	}
	if s.BindGroup() == nil {
		t.Error("BindGroup is nil")
	}

	tests := []struct {
		binding uint32
		want    uint64
	}{
		{BindingHeader, csg.HeaderSize},
		{BindingShapes, 8 * csg.ShapeStride},
		{BindingSpheres, 4 * csg.SphereStride},
		{BindingCuboids, 4 * csg.CuboidStride},
		{BindingComposites, 4 * csg.CompositeStride},
		{99, 0},
	}
	for _, tt := range tests {
		if got := s.BufferSize(tt.binding); got != tt.want {
			t.Errorf("BufferSize(%d) = %d, want %d", tt.binding, got, tt.want)
		}
	}
}

func TestNewStoreZeroCapacityKeepsOneRecord(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewStore(device, queue, csg.Capacity{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	if got := s.BufferSize(BindingCuboids); got != csg.CuboidStride {
		t.Errorf("cuboid buffer = %d bytes, want %d", got, csg.CuboidStride)
	}
}

func TestNewStoreNilDevice(t *testing.T) {
	if _, err := NewStore(nil, nil, smallCapacity()); err == nil {
		t.Error("expected error for nil device")
	}
}

func TestStoreSync(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewStore(device, queue, smallCapacity())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	scene := csg.NewCollection(csg.WithCapacity(smallCapacity()))
	if _, err := scene.CreateComposite(csg.Union(
		csg.SphereLeaf(csg.NewSphere(csg.V3(0, 0, 0), 1), csg.Material{Color: csg.Red}),
		csg.CuboidLeaf(csg.NewCuboid(csg.V3(1, 0, 0), csg.V3(1, 1, 1)), csg.Material{Color: csg.Blue}),
	)); err != nil {
		t.Fatalf("CreateComposite failed: %v", err)
	}

	if err := scene.Sync(s); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if s.Writes() != 1 {
		t.Errorf("Writes = %d, want 1", s.Writes())
	}
	if scene.Dirty() {
		t.Error("collection still dirty after sync")
	}

	// Clean collections do not reach the store.
	if err := scene.Sync(s); err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if s.Writes() != 1 {
		t.Errorf("Writes = %d after clean sync, want 1", s.Writes())
	}
}

func TestStoreFrameTooLarge(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewStore(device, queue, csg.Capacity{Shapes: 1, Spheres: 1, Cuboids: 1, Composites: 1})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	// The collection is larger than the store.
	scene := csg.NewCollection()
	for range 3 {
		if _, err := scene.AddSphere(csg.NewSphere(csg.V3(0, 0, 0), 1), csg.Material{}); err != nil {
			t.Fatalf("AddSphere failed: %v", err)
		}
	}

	err = scene.Sync(s)
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("Sync error = %v, want ErrFrameTooLarge", err)
	}
	if !scene.Dirty() {
		t.Error("collection should stay dirty after failed sync")
	}
	if s.Writes() != 0 {
		t.Errorf("Writes = %d, want 0", s.Writes())
	}
}

func TestStoreClose(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewStore(device, queue, smallCapacity())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	s.Close()
	s.Close() // idempotent

	if s.BindGroup() != nil {
		t.Error("BindGroup should be nil after Close")
	}
	err = s.WriteFrame(csg.NewCollection().Frame())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("WriteFrame after Close = %v, want ErrClosed", err)
	}
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

var (
	_ gpucontext.DeviceProvider = (*mockProvider)(nil)
	_ gpucontext.DeviceProvider = (*halProvider)(nil)
)

// halProvider adds HAL access on top of mockProvider.
type halProvider struct {
	mockProvider
	device hal.Device
	queue  hal.Queue
}

func (p *halProvider) HalDevice() any { return p.device }
func (p *halProvider) HalQueue() any  { return p.queue }

func TestNewStoreFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewStoreFromProvider(&halProvider{device: device, queue: queue}, smallCapacity())
	if err != nil {
		t.Fatalf("NewStoreFromProvider failed: %v", err)
	}
	defer s.Close()

	if !s.externalDevice {
		t.Error("store from provider should mark the device as external")
	}
}

func TestNewStoreFromProviderWithoutHal(t *testing.T) {
	_, err := NewStoreFromProvider(&mockProvider{}, smallCapacity())
	if !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("error = %v, want ErrNoHalAccess", err)
	}
}

func TestNewStoreFromProviderWrongTypes(t *testing.T) {
	_, err := NewStoreFromProvider(&halProvider{}, smallCapacity())
	if !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("error = %v, want ErrNoHalAccess", err)
	}
}
