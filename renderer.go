package rtgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/CreatorSiSo/rt-gpu/internal/gpu"
)

// Renderer is the public entry point: it owns the GPU pipeline for the
// ray-marched scene and synchronizes host-side state (camera, time,
// objects) into GPU resources.
//
// All methods are safe for concurrent use. Setters are idempotent:
// applying the same value twice leaves one observable state, so hosts may
// call them every frame without change tracking.
type Renderer struct {
	mu     sync.Mutex
	core   *gpu.Renderer
	closed bool

	// Last applied values; repeated identical updates skip the GPU write.
	camera     Camera
	time       Time
	hasObjects bool
}

// New creates a Renderer on the GPU device supplied by the host.
//
// The handle must expose the underlying hal device and queue (gogpu hosts
// do). The render pipeline targets handle.SurfaceFormat(); when the host
// reports no format, BGRA8Unorm is assumed.
func New(handle DeviceHandle, opts ...Option) (*Renderer, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}
	device, queue, err := halFromHandle(handle)
	if err != nil {
		return nil, err
	}
	format := handle.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return NewWithDevice(device, queue, format, opts...)
}

// NewWithDevice creates a Renderer directly from hal handles. Intended
// for headless use (backend package) and tests; window hosts normally go
// through [New].
func NewWithDevice(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDeviceHandle
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	core, err := gpu.NewRenderer(device, queue, gpu.Config{
		Format:     format,
		ClearColor: o.clearColor,
		Label:      o.label,
	})
	if err != nil {
		return nil, err
	}

	Logger().Debug("renderer created", "format", format, "label", o.label)

	// The shader must never read uninitialized uniforms; seed both slots.
	r := &Renderer{core: core, camera: Camera{Width: 1, Height: 1}}
	core.SetCamera(1, 1)
	core.SetTime(0)
	return r, nil
}

// UpdateCamera uploads new render target dimensions to the camera slot.
func (r *Renderer) UpdateCamera(c Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	if c == r.camera {
		return nil
	}
	r.core.SetCamera(c.Width, c.Height)
	r.camera = c
	return nil
}

// UpdateTime uploads the elapsed scene time to the time slot.
func (r *Renderer) UpdateTime(t Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	if t == r.time {
		return nil
	}
	r.core.SetTime(t.ElapsedMS)
	r.time = t
	return nil
}

// UpdateObjects replaces the sphere array visible to the shader.
//
// An empty slice is a no-op: the previously uploaded objects remain in
// place. The backing storage buffer is sized exactly to the object count
// and reallocated whenever the count changes.
func (r *Renderer) UpdateObjects(objs []Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	if len(objs) == 0 {
		return nil
	}

	records := make([]gpu.ObjectRecord, len(objs))
	for i, o := range objs {
		records[i] = gpu.ObjectRecord{
			Position: o.Position,
			Radius:   o.Radius,
			Color:    o.Color,
		}
	}
	if err := r.core.SetObjects(records); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceAllocationFailed, err)
	}
	r.hasObjects = true
	return nil
}

// Render draws one frame into the given texture view: clear, bind the
// camera/time/object slots, draw the full-screen quad, submit.
//
// The view comes from the host's surface (or an offscreen texture); the
// caller presents after Render returns.
func (r *Renderer) Render(view hal.TextureView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	return r.core.RenderFrame(view)
}

// Camera returns the last applied camera value.
func (r *Renderer) Camera() Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.camera
}

// ObjectCount returns the number of objects currently uploaded.
func (r *Renderer) ObjectCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.core.ObjectCount()
}

// Close releases all GPU resources held by the renderer. Close is
// idempotent; operations after Close return ErrRendererClosed.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.core.Destroy()
	r.closed = true
}
