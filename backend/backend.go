// Package backend owns the wgpu instance, adapter, device and queue
// used when the renderer drives the GPU itself instead of borrowing a
// host-provided device.
package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	rtgpu "github.com/CreatorSiSo/rt-gpu"
)

// BackendWGPU is the identifier for the wgpu backend.
const BackendWGPU = "wgpu"

// Backend manages the GPU resource chain: instance, adapter, device
// and queue. It must be initialized with Init before use and released
// with Close.
type Backend struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	gpuInfo *GPUInfo

	initialized bool
}

// NewBackend creates an uninitialized backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return BackendWGPU
}

// Init creates the GPU resources: an instance, an adapter (preferring
// a high performance GPU), a device and its queue. Init is idempotent;
// calling it on an initialized backend is a no-op.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", rtgpu.ErrAdapterUnavailable, err)
	}
	b.adapter = adapterID

	logGPUInfo(adapterID)
	b.gpuInfo, _ = getGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, "rtgpu-device")
	if err != nil {
		return fmt.Errorf("%w: %w", rtgpu.ErrDeviceCreationFailed, err)
	}
	b.device = deviceID

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return fmt.Errorf("%w: queue retrieval: %w", rtgpu.ErrDeviceCreationFailed, err)
	}
	b.queue = queueID

	b.initialized = true
	rtgpu.Logger().Info("backend initialized", "backend", BackendWGPU)

	return nil
}

// Close releases all backend resources in reverse order of creation.
// The backend should not be used after Close. Close is idempotent.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	// Queue is released when the device is dropped.

	if !b.device.IsZero() {
		if err := releaseDevice(b.device); err != nil {
			rtgpu.Logger().Warn("device release failed", "error", err)
		}
		b.device = core.DeviceID{}
	}

	if !b.adapter.IsZero() {
		if err := releaseAdapter(b.adapter); err != nil {
			rtgpu.Logger().Warn("adapter release failed", "error", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.gpuInfo = nil
	b.initialized = false

	rtgpu.Logger().Info("backend closed", "backend", BackendWGPU)
}

// IsInitialized reports whether Init has completed successfully.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// GPUInfo returns information about the selected GPU.
// Returns nil if the backend is not initialized.
func (b *Backend) GPUInfo() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// Device returns the GPU device ID.
// Returns a zero ID if the backend is not initialized.
func (b *Backend) Device() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the GPU queue ID.
// Returns a zero ID if the backend is not initialized.
func (b *Backend) Queue() core.QueueID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}
