package surface

import (
	"errors"
	"fmt"
	"testing"

	rtgpu "github.com/CreatorSiSo/rt-gpu"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, OK},
		{"lost", rtgpu.ErrSurfaceLost, Lost},
		{"outdated", rtgpu.ErrSurfaceOutdated, Outdated},
		{"timeout", rtgpu.ErrSurfaceTimeout, Timeout},
		{"out of memory", rtgpu.ErrSurfaceOutOfMemory, OutOfMemory},
		{"wrapped lost", fmt.Errorf("acquire: %w", rtgpu.ErrSurfaceLost), Lost},
		{"wrapped oom", fmt.Errorf("acquire: %w", rtgpu.ErrSurfaceOutOfMemory), OutOfMemory},
		{"unknown", errors.New("driver hiccup"), Lost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusDisposition(t *testing.T) {
	tests := []struct {
		status Status
		want   Disposition
	}{
		{OK, Proceed},
		{Lost, SkipReconfigure},
		{Outdated, Skip},
		{Timeout, Skip},
		{OutOfMemory, Abort},
		{Status(99), SkipReconfigure},
	}
	for _, tt := range tests {
		if got := tt.status.Disposition(); got != tt.want {
			t.Errorf("%v.Disposition() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{OK, "OK"},
		{Lost, "Lost"},
		{Outdated, "Outdated"},
		{Timeout, "Timeout"},
		{OutOfMemory, "OutOfMemory"},
		{Status(42), "Status(42)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDispositionString(t *testing.T) {
	tests := []struct {
		disp Disposition
		want string
	}{
		{Proceed, "Proceed"},
		{SkipReconfigure, "SkipReconfigure"},
		{Skip, "Skip"},
		{Abort, "Abort"},
		{Disposition(7), "Disposition(7)"},
	}
	for _, tt := range tests {
		if got := tt.disp.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewFrameLoopNilFuncs(t *testing.T) {
	acquire := func() (any, error) { return nil, nil }
	reconfigure := func() error { return nil }
	render := func(any) error { return nil }

	if _, err := NewFrameLoop(nil, reconfigure, render); err == nil {
		t.Error("expected error for nil acquire")
	}
	if _, err := NewFrameLoop(acquire, nil, render); err == nil {
		t.Error("expected error for nil reconfigure")
	}
	if _, err := NewFrameLoop(acquire, reconfigure, nil); err == nil {
		t.Error("expected error for nil render")
	}
}

func TestFrameLoopProceed(t *testing.T) {
	var rendered int
	loop, err := NewFrameLoop(
		func() (any, error) { return "tex", nil },
		func() error { t.Fatal("reconfigure should not run"); return nil },
		func(target any) error {
			if target != "tex" {
				t.Errorf("render got %v, want tex", target)
			}
			rendered++
			return nil
		},
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	disp, err := loop.Advance()
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if disp != Proceed {
		t.Errorf("disposition = %v, want Proceed", disp)
	}
	if rendered != 1 || loop.Rendered() != 1 {
		t.Errorf("rendered = %d/%d, want 1/1", rendered, loop.Rendered())
	}
	if loop.LastStatus() != OK {
		t.Errorf("LastStatus = %v, want OK", loop.LastStatus())
	}
}

func TestFrameLoopSkip(t *testing.T) {
	loop, err := NewFrameLoop(
		func() (any, error) { return nil, rtgpu.ErrSurfaceOutdated },
		func() error { t.Fatal("reconfigure should not run"); return nil },
		func(any) error { t.Fatal("render should not run"); return nil },
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	disp, err := loop.Advance()
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if disp != Skip {
		t.Errorf("disposition = %v, want Skip", disp)
	}
	if loop.Skipped() != 1 {
		t.Errorf("Skipped = %d, want 1", loop.Skipped())
	}
	if loop.Reconfigured() != 0 {
		t.Errorf("Reconfigured = %d, want 0", loop.Reconfigured())
	}
}

func TestFrameLoopReconfigure(t *testing.T) {
	var reconfigured int
	loop, err := NewFrameLoop(
		func() (any, error) { return nil, rtgpu.ErrSurfaceLost },
		func() error { reconfigured++; return nil },
		func(any) error { t.Fatal("render should not run"); return nil },
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	disp, err := loop.Advance()
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if disp != SkipReconfigure {
		t.Errorf("disposition = %v, want SkipReconfigure", disp)
	}
	if reconfigured != 1 {
		t.Errorf("reconfigure ran %d times, want 1", reconfigured)
	}
	if loop.Skipped() != 1 || loop.Reconfigured() != 1 {
		t.Errorf("counters = %d/%d, want 1/1", loop.Skipped(), loop.Reconfigured())
	}
}

func TestFrameLoopReconfigureFailure(t *testing.T) {
	wantErr := errors.New("configure failed")
	loop, err := NewFrameLoop(
		func() (any, error) { return nil, rtgpu.ErrSurfaceLost },
		func() error { return wantErr },
		func(any) error { return nil },
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	disp, err := loop.Advance()
	if disp != SkipReconfigure {
		t.Errorf("disposition = %v, want SkipReconfigure", disp)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestFrameLoopAbort(t *testing.T) {
	loop, err := NewFrameLoop(
		func() (any, error) { return nil, rtgpu.ErrSurfaceOutOfMemory },
		func() error { t.Fatal("reconfigure should not run"); return nil },
		func(any) error { t.Fatal("render should not run"); return nil },
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	disp, err := loop.Advance()
	if disp != Abort {
		t.Errorf("disposition = %v, want Abort", disp)
	}
	if !errors.Is(err, rtgpu.ErrSurfaceOutOfMemory) {
		t.Errorf("error = %v, want ErrSurfaceOutOfMemory", err)
	}
}

func TestFrameLoopRenderFailure(t *testing.T) {
	wantErr := errors.New("device removed")
	loop, err := NewFrameLoop(
		func() (any, error) { return "tex", nil },
		func() error { return nil },
		func(any) error { return wantErr },
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	disp, err := loop.Advance()
	if disp != Proceed {
		t.Errorf("disposition = %v, want Proceed", disp)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if loop.Rendered() != 0 {
		t.Errorf("Rendered = %d, want 0 after failed render", loop.Rendered())
	}
}

func TestFrameLoopRecoverySequence(t *testing.T) {
	// Lost, then Outdated, then two clean frames.
	errs := []error{rtgpu.ErrSurfaceLost, rtgpu.ErrSurfaceOutdated, nil, nil}
	var frame int
	loop, err := NewFrameLoop(
		func() (any, error) {
			e := errs[frame]
			frame++
			return nil, e
		},
		func() error { return nil },
		func(any) error { return nil },
	)
	if err != nil {
		t.Fatalf("NewFrameLoop failed: %v", err)
	}

	want := []Disposition{SkipReconfigure, Skip, Proceed, Proceed}
	for i, w := range want {
		disp, err := loop.Advance()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if disp != w {
			t.Errorf("frame %d: disposition = %v, want %v", i, disp, w)
		}
	}
	if loop.Rendered() != 2 || loop.Skipped() != 2 || loop.Reconfigured() != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/2/1",
			loop.Rendered(), loop.Skipped(), loop.Reconfigured())
	}
}
