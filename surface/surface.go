package surface

import (
	"errors"
	"fmt"

	rtgpu "github.com/CreatorSiSo/rt-gpu"
)

// Status is the outcome of a surface texture acquire.
type Status int

const (
	// OK means a texture was acquired and the frame can render.
	OK Status = iota
	// Lost means the surface must be reconfigured before the next acquire.
	Lost
	// Outdated means the surface no longer matches the window, typically
	// mid-resize. The next configure fixes it.
	Outdated
	// Timeout means the acquire did not complete in time.
	Timeout
	// OutOfMemory means the driver could not allocate the texture.
	OutOfMemory
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Lost:
		return "Lost"
	case Outdated:
		return "Outdated"
	case Timeout:
		return "Timeout"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Disposition is the action a render loop takes for a given Status.
type Disposition int

const (
	// Proceed renders the frame.
	Proceed Disposition = iota
	// SkipReconfigure reconfigures the surface and skips the frame.
	SkipReconfigure
	// Skip drops the frame and retries on the next cycle.
	Skip
	// Abort stops the render loop. The condition is not recoverable.
	Abort
)

// String returns the disposition name.
func (d Disposition) String() string {
	switch d {
	case Proceed:
		return "Proceed"
	case SkipReconfigure:
		return "SkipReconfigure"
	case Skip:
		return "Skip"
	case Abort:
		return "Abort"
	default:
		return fmt.Sprintf("Disposition(%d)", int(d))
	}
}

// Classify maps an acquire error to a Status. A nil error is OK.
// Errors outside the known taxonomy are treated as Lost, which forces
// a reconfigure rather than rendering into an unknown surface state.
func Classify(err error) Status {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, rtgpu.ErrSurfaceOutOfMemory):
		return OutOfMemory
	case errors.Is(err, rtgpu.ErrSurfaceOutdated):
		return Outdated
	case errors.Is(err, rtgpu.ErrSurfaceTimeout):
		return Timeout
	case errors.Is(err, rtgpu.ErrSurfaceLost):
		return Lost
	default:
		return Lost
	}
}

// Disposition returns the render-loop action for the status.
func (s Status) Disposition() Disposition {
	switch s {
	case OK:
		return Proceed
	case Lost:
		return SkipReconfigure
	case Outdated, Timeout:
		return Skip
	case OutOfMemory:
		return Abort
	default:
		return SkipReconfigure
	}
}
