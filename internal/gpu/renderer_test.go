package gpu

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
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

// createTestRenderer builds a renderer on a fresh noop device.
func createTestRenderer(t *testing.T) (*Renderer, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	r, err := NewRenderer(device, queue, Config{Format: gputypes.TextureFormatBGRA8Unorm})
	if err != nil {
		cleanup()
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r, func() {
		r.Destroy()
		cleanup()
	}
}

func TestNewRenderer(t *testing.T) {
	r, cleanup := createTestRenderer(t)
	defer cleanup()

	if r.pipeline == nil {
		t.Error("expected pipeline after NewRenderer")
	}
	if r.cameraBuf == nil || r.cameraGroup == nil {
		t.Error("expected camera slot after NewRenderer")
	}
	if r.timeBuf == nil || r.timeGroup == nil {
		t.Error("expected time slot after NewRenderer")
	}
	if r.vertexBuf == nil || r.indexBuf == nil {
		t.Error("expected quad geometry after NewRenderer")
	}
	if r.objects.buf != nil || r.objects.group != nil {
		t.Error("object buffer should not exist before the first upload")
	}
	if got := r.ObjectCount(); got != 0 {
		t.Errorf("ObjectCount() = %d, want 0", got)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()

	if r.cfg.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("default format = %v, want BGRA8Unorm", r.cfg.Format)
	}
	if r.cfg.Label != "raymarch" {
		t.Errorf("default label = %q, want %q", r.cfg.Label, "raymarch")
	}
}

func TestRendererDestroyIdempotent(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	r.Destroy()
	r.Destroy()

	if r.pipeline != nil || r.shader != nil {
		t.Error("expected pipeline resources released after Destroy")
	}
}

func TestQuadVertexData(t *testing.T) {
	data := quadVertexData()
	if len(data) != 4*quadVertexStride {
		t.Fatalf("len(quadVertexData()) = %d, want %d", len(data), 4*quadVertexStride)
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}

	// First vertex: position (-1,-1,0), uv (-1,-1).
	want := []float32{-1, -1, 0, -1, -1}
	for i, w := range want {
		if got := readF32(i * 4); got != w {
			t.Errorf("vertex 0 field %d = %v, want %v", i, got, w)
		}
	}

	// uv must equal xy for every vertex.
	for v := 0; v < 4; v++ {
		base := v * quadVertexStride
		if readF32(base) != readF32(base+12) || readF32(base+4) != readF32(base+16) {
			t.Errorf("vertex %d: uv does not match position xy", v)
		}
	}
}

func TestQuadIndexData(t *testing.T) {
	data := quadIndexData()
	if len(data) != quadIndexCount*2 {
		t.Fatalf("len(quadIndexData()) = %d, want %d", len(data), quadIndexCount*2)
	}
	want := []uint16{0, 1, 2, 0, 3, 1}
	for i, w := range want {
		if got := binary.LittleEndian.Uint16(data[i*2:]); got != w {
			t.Errorf("index %d = %d, want %d", i, got, w)
		}
	}
}

func TestQuadVertexLayout(t *testing.T) {
	layouts := quadVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 vertex buffer layout, got %d", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != quadVertexStride {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, quadVertexStride)
	}
	if len(l.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(l.Attributes))
	}
	if l.Attributes[0].Format != gputypes.VertexFormatFloat32x3 || l.Attributes[0].Offset != 0 {
		t.Error("attribute 0 should be Float32x3 at offset 0")
	}
	if l.Attributes[1].Format != gputypes.VertexFormatFloat32x2 || l.Attributes[1].Offset != 12 {
		t.Error("attribute 1 should be Float32x2 at offset 12")
	}
}

func TestRaymarchShaderSource(t *testing.T) {
	src := RaymarchShaderSource()
	if src == "" {
		t.Fatal("embedded shader source is empty")
	}
	for _, entry := range []string{"vs_main", "fs_main"} {
		if !strings.Contains(src, entry) {
			t.Errorf("shader source missing entry point %q", entry)
		}
	}
	for _, binding := range []string{"@group(0) @binding(0)", "@group(1) @binding(0)", "@group(2) @binding(0)"} {
		if !strings.Contains(src, binding) {
			t.Errorf("shader source missing binding %q", binding)
		}
	}
}
