package sample

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/app"
	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/logging"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins"
)

func TestFrameReadPixelsBeforeRender(t *testing.T) {
	f := NewFrame(platform.Extent{Width: 4, Height: 4})
	if _, err := f.ReadPixels(); !errors.Is(err, errNoFrame) {
		t.Fatalf("expected errNoFrame, got %v", err)
	}
}

func TestFrameZeroExtent(t *testing.T) {
	f := NewFrame(platform.Extent{})
	if !f.Extent().IsZero() {
		t.Fatalf("expected zero extent, got %v", f.Extent())
	}
}

func TestRenderDrawsTriangle(t *testing.T) {
	tri := NewTriangle(nil)
	tri.overlay = false
	tri.frame = NewFrame(platform.Extent{Width: 64, Height: 64})
	tri.frame.index = 1
	tri.render(0)

	img, err := tri.frame.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != background {
		t.Fatalf("corner = %v, want background %v", got, background)
	}
	if got := img.RGBAAt(32, 32); got == background {
		t.Fatalf("expected triangle at center")
	}

	img.SetRGBA(32, 32, color.RGBA{})
	if tri.frame.Image().RGBAAt(32, 32) == (color.RGBA{}) {
		t.Fatalf("ReadPixels should return a copy")
	}
}

type recordingPost struct {
	indices []uint64
	err     error
}

func (r *recordingPost) OnPostDraw(ctx platform.RenderContext) error {
	r.indices = append(r.indices, ctx.FrameIndex())
	return r.err
}

func newHeadlessApp(t *testing.T, host app.Host, delegate any) *app.Application {
	t.Helper()
	props := platform.DefaultProperties()
	props.Mode = platform.ModeHeadless
	props.Title = Name
	props.Extent = platform.Extent{Width: 32, Height: 24}
	a, err := app.New(host,
		app.WithProperties(props),
		app.WithDelegate(delegate),
		app.WithLogger(logging.Discard()),
		app.WithClock(clock.NewMock()),
	)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a
}

func TestTriangleRunsWithPlugins(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	cfg := config.DefaultConfig()
	cfg.Plugins.StopAfter.Enabled = true
	cfg.Plugins.StopAfter.Frames = 3
	cfg.Plugins.Screenshot.Enabled = true
	cfg.Plugins.Screenshot.Frame = 2
	cfg.Plugins.Screenshot.Output = out

	pl, err := platform.New(platform.Options{
		Logger:    logging.Discard(),
		Plugins:   plugins.All(clock.NewMock()),
		Arguments: cfg,
	})
	if err != nil {
		t.Fatalf("platform.New: %v", err)
	}

	tri := NewTriangle(pl)
	a := newHeadlessApp(t, pl, tri)
	if !a.Prepare() {
		t.Fatalf("expected Prepare to succeed")
	}
	if code := a.Run(); code != app.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, app.ExitSuccess)
	}
	if a.FrameCount() != 3 {
		t.Fatalf("expected 3 frames, got %d", a.FrameCount())
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected screenshot: %v", err)
	}
}

func TestTrianglePostDrawErrorFailsRun(t *testing.T) {
	pl, err := platform.New(platform.Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("platform.New: %v", err)
	}
	post := &recordingPost{err: errors.New("capture failed")}
	a := newHeadlessApp(t, pl, NewTriangle(post))
	a.Prepare()
	if code := a.Run(); code != app.ExitFailure {
		t.Fatalf("Run() = %d, want %d", code, app.ExitFailure)
	}
	if len(post.indices) != 1 || post.indices[0] != 1 {
		t.Fatalf("expected one post-draw for frame 1, got %v", post.indices)
	}
}

func TestTriangleInput(t *testing.T) {
	pl, err := platform.New(platform.Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("platform.New: %v", err)
	}
	tri := NewTriangle(nil)
	a := newHeadlessApp(t, pl, tri)

	a.InputEvent(platform.KeyEvent{Key: "F1", Action: platform.ActionDown})
	if tri.overlay {
		t.Fatalf("expected F1 to hide the overlay")
	}
	a.InputEvent(platform.KeyEvent{Key: "Escape", Action: platform.ActionUp})
	if a.Window().ShouldClose() {
		t.Fatalf("key release should not close")
	}
	a.InputEvent(platform.KeyEvent{Key: "Escape", Action: platform.ActionDown})
	if !a.Window().ShouldClose() {
		t.Fatalf("expected Escape to close the window")
	}
}

func TestTriangleResizeKeepsFrameIndex(t *testing.T) {
	pl, err := platform.New(platform.Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("platform.New: %v", err)
	}
	tri := NewTriangle(nil)
	a := newHeadlessApp(t, pl, tri)
	a.Prepare()
	tri.frame.index = 7

	got := a.Resize(platform.Extent{Width: 10, Height: 5})
	if got != (platform.Extent{Width: 10, Height: 5}) {
		t.Fatalf("Resize() = %v", got)
	}
	if tri.Frame().Extent() != got || tri.Frame().FrameIndex() != 7 {
		t.Fatalf("unexpected frame after resize: %v #%d", tri.Frame().Extent(), tri.Frame().FrameIndex())
	}
}
