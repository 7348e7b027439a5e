// Package gpu implements the hal-level core of the renderer: shader
// compilation, the render pipeline, uniform slots, the dynamic object
// buffer, and per-frame command encoding.
package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader source, compiled at renderer construction.
//
//go:embed shaders/raymarch.wgsl
var raymarchShaderSource string

// ErrShaderCompile wraps naga compilation failures. The root package
// re-exports it as part of the public error taxonomy.
var ErrShaderCompile = errors.New("rtgpu: shader compilation failed")

// ErrEmptyShaderSource is returned when the embedded shader is missing.
var ErrEmptyShaderSource = errors.New("rtgpu: raymarch shader source is empty")

// compileShaderToSPIRV compiles WGSL source to a SPIR-V uint32 slice.
// SPIR-V is little-endian 32-bit words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}

// createShaderModule validates the embedded WGSL through naga and creates
// the HAL shader module from the resulting SPIR-V. Going through naga
// rejects binding-schema drift at construction instead of first draw.
func createShaderModule(device hal.Device, label string) (hal.ShaderModule, error) {
	if raymarchShaderSource == "" {
		return nil, ErrEmptyShaderSource
	}
	spirvCode, err := compileShaderToSPIRV(raymarchShaderSource)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirvCode,
		},
	})
}

// RaymarchShaderSource returns the embedded WGSL source.
func RaymarchShaderSource() string {
	return raymarchShaderSource
}
