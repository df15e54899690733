package benchmark

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

func TestBenchmarkSummary(t *testing.T) {
	var logs bytes.Buffer
	mock := clock.NewMock()
	cfg := config.DefaultConfig()
	cfg.Plugins.Benchmark.Enabled = true

	p := New(mock)
	pl, err := platform.New(platform.Options{
		Logger:    slog.New(slog.NewTextHandler(&logs, nil)),
		Plugins:   []platform.Plugin{p},
		Arguments: cfg,
	})
	if err != nil {
		t.Fatalf("platform.New() error: %v", err)
	}

	pl.AppStarted("demo")
	for _, dt := range []float64{0.5, 0.25, 0.25, 0} {
		_ = pl.Update(dt)
	}
	mock.Add(3 * time.Second)
	pl.AppClosed("demo")
	pl.AppClosed("demo")

	s := p.Summary()
	if s.App != "demo" || s.Frames != 3 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Duration != 3*time.Second {
		t.Fatalf("expected 3s duration, got %v", s.Duration)
	}
	if s.AverageFPS != 3 {
		t.Fatalf("expected 3 fps average, got %v", s.AverageFPS)
	}
	if s.MinFrameMS != 250 || s.MaxFrameMS != 500 {
		t.Fatalf("expected 250..500 ms, got %v..%v", s.MinFrameMS, s.MaxFrameMS)
	}
	if n := strings.Count(logs.String(), "benchmark complete"); n != 1 {
		t.Fatalf("expected one summary log, got %d", n)
	}
}

func TestBenchmarkNoFrames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Plugins.Benchmark.Enabled = true
	p := New(clock.NewMock())
	pl, _ := platform.New(platform.Options{
		Logger:    slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Plugins:   []platform.Plugin{p},
		Arguments: cfg,
	})

	pl.AppFailed("demo")
	if s := p.Summary(); s.Frames != 0 || s.AverageFPS != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}
