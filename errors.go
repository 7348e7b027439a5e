package rtgpu

import (
	"errors"

	"github.com/CreatorSiSo/rt-gpu/internal/gpu"
)

// Error taxonomy for GPU setup, resource management, and surface
// acquisition. Callers classify with errors.Is; wrapped causes carry
// the backend detail.
var (
	// ErrAdapterUnavailable is returned when no suitable GPU adapter exists.
	ErrAdapterUnavailable = errors.New("rtgpu: no suitable GPU adapter available")

	// ErrDeviceCreationFailed is returned when the logical device cannot
	// be created from the selected adapter.
	ErrDeviceCreationFailed = errors.New("rtgpu: device creation failed")

	// ErrResourceAllocationFailed is returned when a buffer, bind group,
	// or pipeline object cannot be allocated.
	ErrResourceAllocationFailed = errors.New("rtgpu: GPU resource allocation failed")

	// ErrShaderCompile is returned when the embedded WGSL shader fails
	// validation or compilation.
	ErrShaderCompile = gpu.ErrShaderCompile

	// ErrSurfaceLost indicates the surface is no longer usable and must be
	// reconfigured before the next frame.
	ErrSurfaceLost = errors.New("rtgpu: surface lost")

	// ErrSurfaceOutdated indicates the surface configuration no longer
	// matches the window, typically mid-resize. The frame is skipped.
	ErrSurfaceOutdated = errors.New("rtgpu: surface outdated")

	// ErrSurfaceTimeout indicates the next surface texture was not
	// available in time. The frame is skipped.
	ErrSurfaceTimeout = errors.New("rtgpu: surface acquire timed out")

	// ErrSurfaceOutOfMemory indicates the surface ran out of memory.
	// This is not recoverable.
	ErrSurfaceOutOfMemory = errors.New("rtgpu: surface out of memory")

	// ErrRendererClosed is returned when operating on a closed renderer.
	ErrRendererClosed = errors.New("rtgpu: renderer closed")

	// ErrNilDeviceHandle is returned when constructing a renderer from a
	// nil device handle.
	ErrNilDeviceHandle = errors.New("rtgpu: nil device handle")

	// ErrNoHALAccess is returned when a device handle does not expose the
	// underlying hal device and queue.
	ErrNoHALAccess = errors.New("rtgpu: device handle does not provide HAL access")
)
