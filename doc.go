// Package rtgpu is a minimal real-time renderer for ray-marched sphere
// scenes on the GPU, built on gogpu/wgpu.
//
// The renderer draws a single full-screen quad; the fragment shader ray
// marches a dynamic array of spheres uploaded by the host each frame.
// Three uniform slots feed the shader: camera dimensions (group 0), elapsed
// time (group 1), and the sphere array (group 2).
//
// The host application owns the window, the surface, and the event loop.
// rtgpu receives a GPU device from the host (or creates one via the
// backend package for headless use) and renders into texture views the
// host acquires from its surface:
//
//	handle := app.GPUContextProvider()
//	r, err := rtgpu.New(handle)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	r.UpdateCamera(rtgpu.Camera{Width: 800, Height: 600})
//	r.UpdateObjects(spheres)
//
//	for running {
//	    r.UpdateTime(rtgpu.Time{ElapsedMS: float32(time.Since(start).Milliseconds())})
//	    view, err := acquireSurfaceTexture()
//	    switch surface.Classify(err).Disposition() {
//	    case surface.Proceed:
//	        _ = r.Render(view)
//	    case surface.SkipReconfigure:
//	        reconfigureSurface()
//	    case surface.Skip:
//	        // try again next frame
//	    case surface.Abort:
//	        running = false
//	    }
//	}
//
// By default rtgpu produces no log output; call [SetLogger] to enable it.
package rtgpu
