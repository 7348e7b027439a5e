package rtgpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the primary integration point between rtgpu and GPU
// frameworks like gogpu. The host application implements DeviceHandle and
// passes it to [New], allowing the renderer to use the shared GPU device.
//
// Key principle: rtgpu RECEIVES the device from the host, it does NOT
// create one. The host owns the window, the surface, and the swap chain;
// rtgpu only renders into texture views the host acquires. This enables:
//   - Shared GPU resources between rtgpu and the host application
//   - Zero device creation overhead in rtgpu
//   - Several independent renderers on one device (one per window)
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing an
// rtgpu-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
//
// For headless or test use, construct the renderer directly from hal
// handles with [NewWithDevice].
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by device handles that expose the raw hal
// device and queue, per gpucontext conventions. The methods return `any`
// so gpucontext does not depend on a specific hal version; the values
// must type-assert to hal.Device and hal.Queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromHandle extracts the hal device and queue from a device handle.
// Returns ErrNoHALAccess when the handle does not implement halProvider
// or its values have the wrong dynamic type.
func halFromHandle(handle DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNoHALAccess
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoHALAccess
	}
	return device, queue, nil
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Useful as a placeholder where no GPU is available; [New] rejects it
// with ErrNoHALAccess.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns an empty info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
