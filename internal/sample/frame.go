package sample

import (
	"errors"
	"image"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

var errNoFrame = errors.New("no frame rendered")

// Frame is a CPU-side color target. It satisfies platform.RenderContext.
type Frame struct {
	img   *image.RGBA
	index uint64
}

var _ platform.RenderContext = (*Frame)(nil)

// NewFrame allocates a target of the given size. A zero extent, which is
// how a minimized window reports itself, yields an empty frame.
func NewFrame(extent platform.Extent) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, int(extent.Width), int(extent.Height)))}
}

func (f *Frame) Extent() platform.Extent {
	b := f.img.Bounds()
	return platform.Extent{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
}

func (f *Frame) FrameIndex() uint64 { return f.index }

// ReadPixels returns a copy of the target.
func (f *Frame) ReadPixels() (*image.RGBA, error) {
	if f.index == 0 {
		return nil, errNoFrame
	}
	out := image.NewRGBA(f.img.Bounds())
	copy(out.Pix, f.img.Pix)
	return out, nil
}

// Image exposes the live target.
func (f *Frame) Image() *image.RGBA { return f.img }
