package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderFrame encodes and submits one frame into the given texture view:
// clear, bind the three slots, draw the indexed quad.
//
// Submission does not block on GPU completion; the host synchronizes
// through its surface acquire. The view is typically the host's current
// surface texture. With no objects uploaded yet, group 2 is left unbound
// and the pass only clears and shades the background.
func (r *Renderer) RenderFrame(view hal.TextureView) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.cfg.Label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.cfg.Label + "_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: r.cfg.Label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.cfg.ClearColor,
		}},
	})

	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.cameraGroup, nil)
	rp.SetBindGroup(1, r.timeGroup, nil)
	if r.objects.group != nil {
		rp.SetBindGroup(2, r.objects.group, nil)
	}
	rp.SetVertexBuffer(0, r.vertexBuf, 0)
	rp.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(quadIndexCount, 1, 0, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	return nil
}
