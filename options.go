package rtgpu

import "github.com/gogpu/gputypes"

// Option configures a Renderer during creation.
//
// Example:
//
//	// Default configuration (magenta clear color)
//	r, err := rtgpu.New(handle)
//
//	// Black clear color and a custom debug label
//	r, err := rtgpu.New(handle,
//	    rtgpu.WithClearColor(0, 0, 0, 1),
//	    rtgpu.WithLabel("main-view"))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	clearColor gputypes.Color
	label      string
}

// defaultOptions returns the default renderer options.
//
// The magenta clear color is deliberate: any pixel the shader does not
// cover is immediately visible during development.
func defaultOptions() rendererOptions {
	return rendererOptions{
		clearColor: gputypes.Color{R: 1, G: 0, B: 1, A: 1},
		label:      "rtgpu",
	}
}

// WithClearColor sets the render pass clear color. Components are in
// [0, 1]; values outside that range are passed through unclamped.
func WithClearColor(r, g, b, a float64) Option {
	return func(o *rendererOptions) {
		o.clearColor = gputypes.Color{R: r, G: g, B: b, A: a}
	}
}

// WithLabel sets the debug label prefix used for GPU objects created by
// the renderer. Useful when several renderers share one device.
func WithLabel(label string) Option {
	return func(o *rendererOptions) {
		if label != "" {
			o.label = label
		}
	}
}
