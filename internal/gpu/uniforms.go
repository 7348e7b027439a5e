package gpu

import (
	"encoding/binary"
	"math"
)

// Uniform buffer sizes. Both slots are two 32-bit fields: the camera
// packs width and height, the time slot packs elapsed milliseconds plus
// explicit padding so the buffer size stays 8-byte aligned.
const (
	cameraUniformSize = 8
	timeUniformSize   = 8
)

// packCamera serializes the camera uniform (width, height as u32).
func packCamera(width, height uint32) []byte {
	buf := make([]byte, cameraUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], width)
	binary.LittleEndian.PutUint32(buf[4:8], height)
	return buf
}

// packTime serializes the time uniform (elapsed_ms as f32, 4 bytes pad).
func packTime(elapsedMS float32) []byte {
	buf := make([]byte, timeUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(elapsedMS))
	return buf
}

// SetCamera uploads new dimensions to the camera slot. The buffer is
// written in place; it is never reallocated.
func (r *Renderer) SetCamera(width, height uint32) {
	r.queue.WriteBuffer(r.cameraBuf, 0, packCamera(width, height))
}

// SetTime uploads the elapsed scene time to the time slot.
func (r *Renderer) SetTime(elapsedMS float32) {
	r.queue.WriteBuffer(r.timeBuf, 0, packTime(elapsedMS))
}
