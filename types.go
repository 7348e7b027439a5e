package rtgpu

// Camera describes the render target dimensions in pixels. The fragment
// shader uses it to reconstruct normalized screen coordinates.
type Camera struct {
	Width  uint32
	Height uint32
}

// Time carries the elapsed scene time in milliseconds. Animated shading
// in the fragment shader is driven by this value.
type Time struct {
	ElapsedMS float32
}

// Object is a single sphere in the ray-marched scene.
//
// The GPU-side record is 32 bytes: position (12) + radius (4) packed
// against it, then color (16), matching the 16-byte aligned layout the
// shader's storage array expects.
type Object struct {
	// Position is the sphere center in world space.
	Position [3]float32

	// Radius is the sphere radius in world units.
	Radius float32

	// Color is the sphere surface color (RGBA, 0..1).
	Color [4]float32
}
