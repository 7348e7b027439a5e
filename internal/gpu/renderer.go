package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// quadVertexStride is the byte stride per vertex of the full-screen quad.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes   (location 1)
//
// Total = 20 bytes per vertex.
const quadVertexStride = 20

// quadIndexCount is the number of indices in the quad index buffer.
const quadIndexCount = 6

// Config holds construction parameters for the core renderer.
type Config struct {
	// Format is the color target format, normally the surface format.
	Format gputypes.TextureFormat

	// ClearColor is the render pass clear value.
	ClearColor gputypes.Color

	// Label prefixes the debug labels of all GPU objects.
	Label string
}

// Renderer owns every GPU object of the ray-march pipeline: the shader,
// the three bind group layouts (camera, time, objects), the render
// pipeline, the static quad geometry, and the per-slot buffers.
//
// Renderer is not safe for concurrent use; the public facade serializes
// access.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	cfg    Config

	shader hal.ShaderModule

	cameraLayout  hal.BindGroupLayout
	timeLayout    hal.BindGroupLayout
	objectsLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	cameraBuf   hal.Buffer
	cameraGroup hal.BindGroup
	timeBuf     hal.Buffer
	timeGroup   hal.BindGroup

	vertexBuf hal.Buffer
	indexBuf  hal.Buffer

	objects objectStore

	destroyOnce sync.Once
}

// NewRenderer creates the full pipeline on the given device. On any
// failure, objects created so far are destroyed before returning.
func NewRenderer(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = gputypes.TextureFormatBGRA8Unorm
	}
	if cfg.Label == "" {
		cfg.Label = "raymarch"
	}

	r := &Renderer{device: device, queue: queue, cfg: cfg}

	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createUniformSlots(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createQuadGeometry(); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// createPipeline compiles the shader and creates the bind group layouts,
// the pipeline layout, and the render pipeline.
func (r *Renderer) createPipeline() error {
	shader, err := createShaderModule(r.device, r.cfg.Label+"_shader")
	if err != nil {
		return fmt.Errorf("compile raymarch shader: %w", err)
	}
	r.shader = shader

	// Group 0, binding 0: Camera uniform (fragment).
	cameraLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.cfg.Label + "_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}
	r.cameraLayout = cameraLayout

	// Group 1, binding 0: Time uniform (fragment).
	timeLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.cfg.Label + "_time_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create time layout: %w", err)
	}
	r.timeLayout = timeLayout

	// Group 2, binding 0: object array (read-only storage, fragment).
	objectsLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.cfg.Label + "_objects_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create objects layout: %w", err)
	}
	r.objectsLayout = objectsLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            r.cfg.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.cameraLayout, r.timeLayout, r.objectsLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  r.cfg.Label + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.cfg.Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create raymarch pipeline: %w", err)
	}
	r.pipeline = pipeline

	return nil
}

// createUniformSlots allocates the camera and time uniform buffers with
// their bind groups and seeds them with the initial values (camera 1x1,
// time 0).
func (r *Renderer) createUniformSlots() error {
	cameraBuf, cameraGroup, err := r.createUniformSlot(
		r.cfg.Label+"_camera", r.cameraLayout, packCamera(1, 1))
	if err != nil {
		return fmt.Errorf("camera slot: %w", err)
	}
	r.cameraBuf, r.cameraGroup = cameraBuf, cameraGroup

	timeBuf, timeGroup, err := r.createUniformSlot(
		r.cfg.Label+"_time", r.timeLayout, packTime(0))
	if err != nil {
		return fmt.Errorf("time slot: %w", err)
	}
	r.timeBuf, r.timeGroup = timeBuf, timeGroup

	return nil
}

// createUniformSlot creates one uniform buffer with its bind group and
// uploads the initial contents.
func (r *Renderer) createUniformSlot(label string, layout hal.BindGroupLayout, initial []byte) (hal.Buffer, hal.BindGroup, error) {
	buf, err := r.createAndUploadBuffer(label+"_buf", initial,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, nil, err
	}

	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_group",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(),
					Offset: 0,
					Size:   uint64(len(initial)),
				},
			},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(buf)
		return nil, nil, fmt.Errorf("create %s bind group: %w", label, err)
	}
	return buf, group, nil
}

// createQuadGeometry uploads the static full-screen quad.
//
// Vertex order matches the index winding 0 1 2 / 0 3 1 so both triangles
// face the camera.
func (r *Renderer) createQuadGeometry() error {
	vertexBuf, err := r.createAndUploadBuffer(r.cfg.Label+"_quad_vb",
		quadVertexData(), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("quad vertex buffer: %w", err)
	}
	r.vertexBuf = vertexBuf

	indexBuf, err := r.createAndUploadBuffer(r.cfg.Label+"_quad_ib",
		quadIndexData(), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("quad index buffer: %w", err)
	}
	r.indexBuf = indexBuf

	return nil
}

// createAndUploadBuffer creates a buffer sized to data and writes data
// into it through the queue.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// ObjectCount returns the number of objects currently uploaded.
func (r *Renderer) ObjectCount() int {
	return r.objects.count
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times.
func (r *Renderer) Destroy() {
	r.destroyOnce.Do(func() {
		if r.device == nil {
			return
		}
		r.objects.destroy(r.device)
		if r.indexBuf != nil {
			r.device.DestroyBuffer(r.indexBuf)
			r.indexBuf = nil
		}
		if r.vertexBuf != nil {
			r.device.DestroyBuffer(r.vertexBuf)
			r.vertexBuf = nil
		}
		if r.timeGroup != nil {
			r.device.DestroyBindGroup(r.timeGroup)
			r.timeGroup = nil
		}
		if r.timeBuf != nil {
			r.device.DestroyBuffer(r.timeBuf)
			r.timeBuf = nil
		}
		if r.cameraGroup != nil {
			r.device.DestroyBindGroup(r.cameraGroup)
			r.cameraGroup = nil
		}
		if r.cameraBuf != nil {
			r.device.DestroyBuffer(r.cameraBuf)
			r.cameraBuf = nil
		}
		if r.pipeline != nil {
			r.device.DestroyRenderPipeline(r.pipeline)
			r.pipeline = nil
		}
		if r.pipeLayout != nil {
			r.device.DestroyPipelineLayout(r.pipeLayout)
			r.pipeLayout = nil
		}
		if r.objectsLayout != nil {
			r.device.DestroyBindGroupLayout(r.objectsLayout)
			r.objectsLayout = nil
		}
		if r.timeLayout != nil {
			r.device.DestroyBindGroupLayout(r.timeLayout)
			r.timeLayout = nil
		}
		if r.cameraLayout != nil {
			r.device.DestroyBindGroupLayout(r.cameraLayout)
			r.cameraLayout = nil
		}
		if r.shader != nil {
			r.device.DestroyShaderModule(r.shader)
			r.shader = nil
		}
	})
}

// quadVertexLayout returns the vertex buffer layout for the quad.
// Matches VertexInput in raymarch.wgsl:
//
//	location 0: position (vec3<f32>)
//	location 1: uv       (vec2<f32>)
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // uv
			},
		},
	}
}

// quadVertexData serializes the four quad corners. The uv equals the xy
// clip position so the fragment shader receives coordinates in [-1, 1].
func quadVertexData() []byte {
	corners := [4][5]float32{
		{-1, -1, 0, -1, -1},
		{1, 1, 0, 1, 1},
		{1, -1, 0, 1, -1},
		{-1, 1, 0, -1, 1},
	}
	data := make([]byte, len(corners)*quadVertexStride)
	off := 0
	for _, c := range corners {
		for _, v := range c {
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(v))
			off += 4
		}
	}
	return data
}

// quadIndexData serializes the two quad triangles as uint16 indices.
func quadIndexData() []byte {
	indices := [quadIndexCount]uint16{0, 1, 2, 0, 3, 1}
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}
