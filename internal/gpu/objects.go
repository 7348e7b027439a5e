package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// objectStride is the byte size of one object record in the storage
// buffer. The shader-side struct is 16-byte aligned:
//
//	position (vec3<f32>) = 12 bytes
//	radius   (f32)       = 4 bytes
//	color    (vec4<f32>) = 16 bytes
//
// Total = 32 bytes per record, no implicit padding.
const objectStride = 32

// ObjectRecord is one sphere as uploaded to the GPU.
type ObjectRecord struct {
	Position [3]float32
	Radius   float32
	Color    [4]float32
}

// objectStore holds the storage buffer backing the shader's object
// array. The buffer and bind group are created lazily on the first
// non-empty upload; until then only the layout exists and the render
// pass leaves group 2 unbound.
type objectStore struct {
	buf   hal.Buffer
	group hal.BindGroup
	size  uint64
	count int
}

// SetObjects replaces the uploaded object array.
//
// An empty slice is a no-op: the previous buffer, bind group, and count
// are retained. The buffer is sized exactly to len(objs)*objectStride;
// a count change destroys and recreates buffer and bind group, while an
// unchanged count reuses them and only rewrites the contents.
func (r *Renderer) SetObjects(objs []ObjectRecord) error {
	if len(objs) == 0 {
		return nil
	}

	needed := uint64(len(objs)) * objectStride
	if r.objects.buf == nil || r.objects.size != needed {
		if err := r.reallocObjects(needed); err != nil {
			return err
		}
	}

	r.queue.WriteBuffer(r.objects.buf, 0, packObjects(objs))
	r.objects.count = len(objs)
	return nil
}

// reallocObjects replaces the storage buffer and bind group with ones of
// exactly the given size. The new pair is created and installed before
// the old pair is released; on any failure the previous store is left
// untouched so the scene survives and the next update can retry.
func (r *Renderer) reallocObjects(size uint64) error {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.cfg.Label + "_objects_buf",
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create objects buffer: %w", err)
	}

	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  r.cfg.Label + "_objects_group",
		Layout: r.objectsLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(),
					Offset: 0,
					Size:   size,
				},
			},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(buf)
		return fmt.Errorf("create objects bind group: %w", err)
	}

	old := r.objects
	r.objects = objectStore{buf: buf, group: group, size: size, count: old.count}
	old.destroy(r.device)
	return nil
}

// destroy releases the buffer and bind group and resets the store.
func (s *objectStore) destroy(device hal.Device) {
	if s.group != nil {
		device.DestroyBindGroup(s.group)
		s.group = nil
	}
	if s.buf != nil {
		device.DestroyBuffer(s.buf)
		s.buf = nil
	}
	s.size = 0
	s.count = 0
}

// packObjects serializes records into the 32-byte GPU layout.
func packObjects(objs []ObjectRecord) []byte {
	data := make([]byte, len(objs)*objectStride)
	off := 0
	for _, o := range objs {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(o.Position[0]))
		binary.LittleEndian.PutUint32(data[off+4:], math.Float32bits(o.Position[1]))
		binary.LittleEndian.PutUint32(data[off+8:], math.Float32bits(o.Position[2]))
		binary.LittleEndian.PutUint32(data[off+12:], math.Float32bits(o.Radius))
		binary.LittleEndian.PutUint32(data[off+16:], math.Float32bits(o.Color[0]))
		binary.LittleEndian.PutUint32(data[off+20:], math.Float32bits(o.Color[1]))
		binary.LittleEndian.PutUint32(data[off+24:], math.Float32bits(o.Color[2]))
		binary.LittleEndian.PutUint32(data[off+28:], math.Float32bits(o.Color[3]))
		off += objectStride
	}
	return data
}
