package surface

import (
	"fmt"

	rtgpu "github.com/CreatorSiSo/rt-gpu"
)

// AcquireFunc obtains the next surface texture. On success it returns a
// handle the render func can draw into; on failure the error is
// classified by Classify.
type AcquireFunc func() (any, error)

// ReconfigureFunc reapplies the surface configuration after a Lost
// acquire.
type ReconfigureFunc func() error

// RenderFunc renders one frame into the acquired texture.
type RenderFunc func(target any) error

// FrameLoop applies the acquire classification policy frame by frame.
// It is not safe for concurrent use; drive it from the render thread.
type FrameLoop struct {
	acquire     AcquireFunc
	reconfigure ReconfigureFunc
	render      RenderFunc

	rendered     uint64
	skipped      uint64
	reconfigured uint64
	lastStatus   Status
}

// NewFrameLoop builds a loop from the three host callbacks. All three
// must be non-nil.
func NewFrameLoop(acquire AcquireFunc, reconfigure ReconfigureFunc, render RenderFunc) (*FrameLoop, error) {
	if acquire == nil || reconfigure == nil || render == nil {
		return nil, fmt.Errorf("rtgpu/surface: frame loop requires acquire, reconfigure and render funcs")
	}
	return &FrameLoop{acquire: acquire, reconfigure: reconfigure, render: render}, nil
}

// Advance runs one frame cycle: acquire, classify, then render, skip,
// reconfigure-and-skip, or abort. It returns the disposition that was
// applied. The returned error is non-nil only for Abort, for a failed
// reconfigure, or for a render failure.
func (l *FrameLoop) Advance() (Disposition, error) {
	target, err := l.acquire()
	status := Classify(err)
	l.lastStatus = status
	disp := status.Disposition()

	switch disp {
	case Proceed:
		if err := l.render(target); err != nil {
			return Proceed, err
		}
		l.rendered++
	case SkipReconfigure:
		l.skipped++
		l.reconfigured++
		rtgpu.Logger().Warn("surface lost, reconfiguring",
			"status", status.String(),
			"skipped", l.skipped)
		if rerr := l.reconfigure(); rerr != nil {
			return SkipReconfigure, fmt.Errorf("reconfigure surface: %w", rerr)
		}
	case Skip:
		l.skipped++
		rtgpu.Logger().Debug("frame skipped",
			"status", status.String(),
			"skipped", l.skipped)
	case Abort:
		rtgpu.Logger().Error("surface acquire failed fatally",
			"status", status.String())
		return Abort, err
	}
	return disp, nil
}

// Rendered returns how many frames completed a render.
func (l *FrameLoop) Rendered() uint64 { return l.rendered }

// Skipped returns how many frames were dropped.
func (l *FrameLoop) Skipped() uint64 { return l.skipped }

// Reconfigured returns how many times the surface was reconfigured.
func (l *FrameLoop) Reconfigured() uint64 { return l.reconfigured }

// LastStatus returns the classification of the most recent acquire.
func (l *FrameLoop) LastStatus() Status { return l.lastStatus }
