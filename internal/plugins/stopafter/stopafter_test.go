package stopafter

import (
	"testing"

	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/logging"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

func newPlatform(t *testing.T, cfg *config.Config, p platform.Plugin) *platform.Platform {
	t.Helper()
	pl, err := platform.New(platform.Options{
		Logger:    logging.Discard(),
		Plugins:   []platform.Plugin{p},
		Arguments: cfg,
	})
	if err != nil {
		t.Fatalf("platform.New() error: %v", err)
	}
	return pl
}

func TestStopAfterRequestsCloseOnLastFrame(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Plugins.StopAfter.Enabled = true
	cfg.Plugins.StopAfter.Frames = 3

	p := New()
	pl := newPlatform(t, cfg, p)
	if !pl.UsingPlugin(Tag) {
		t.Fatalf("expected plugin to be active")
	}

	for i := 0; i < 2; i++ {
		if err := pl.Update(0.016); err != nil {
			t.Fatalf("Update() error: %v", err)
		}
		if pl.ShouldClose() {
			t.Fatalf("expected platform open after %d frames", i+1)
		}
	}
	_ = pl.Update(0.016)
	if !pl.ShouldClose() {
		t.Fatalf("expected close request after 3 frames")
	}
	if p.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", p.Remaining())
	}
}

func TestStopAfterDisabled(t *testing.T) {
	pl := newPlatform(t, config.DefaultConfig(), New())
	if pl.UsingPlugin(Tag) {
		t.Fatalf("expected plugin to stay inactive without its section")
	}
}
