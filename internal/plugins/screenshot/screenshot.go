// Package screenshot writes a PNG of one chosen frame.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/paths"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

const Tag platform.Tag = "screenshot"

type Options struct {
	Frame  uint64  `yaml:"frame"`
	Output string  `yaml:"output"`
	Scale  float64 `yaml:"scale"`
}

type Plugin struct {
	platform.PluginBase

	logger *slog.Logger
	opts   Options
	app    string
	saved  string
}

var _ platform.Plugin = (*Plugin)(nil)

func New() *Plugin {
	return &Plugin{
		PluginBase: platform.PluginBase{
			PluginName:        "screenshot",
			PluginDescription: "Save a PNG of the given frame",
			PluginTags:        []platform.Tag{Tag},
			PluginHooks:       []platform.Hook{platform.OnAppStart, platform.PostDraw},
		},
	}
}

func (p *Plugin) Activate(host *platform.Platform, args platform.Arguments) bool {
	if !args.Enabled(config.PluginScreenshot) {
		return false
	}
	opts := Options{Frame: 1, Scale: 1}
	if err := args.Decode(config.PluginScreenshot, &opts); err != nil {
		host.Logger().Warn("screenshot: bad options", "error", err)
		return false
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	p.logger = host.Logger()
	p.opts = opts
	return true
}

func (p *Plugin) OnAppStart(app string) { p.app = app }

// OnPostDraw captures the first non-empty frame at or after the chosen index.
// A minimized window draws 0x0 frames, so the capture waits for it to return.
func (p *Plugin) OnPostDraw(ctx platform.RenderContext) error {
	if p.saved != "" || ctx == nil || ctx.FrameIndex() < p.opts.Frame {
		return nil
	}
	if ctx.Extent().IsZero() {
		return nil
	}
	img, err := ctx.ReadPixels()
	if err != nil {
		return fmt.Errorf("read frame %d: %w", ctx.FrameIndex(), err)
	}
	img = Scale(img, p.opts.Scale)

	path, err := p.outputPath()
	if err != nil {
		return err
	}
	if err := WritePNG(path, img); err != nil {
		return err
	}
	p.saved = path
	p.logger.Info("screenshot saved", "path", path, "frame", ctx.FrameIndex(), "extent", ctx.Extent())
	return nil
}

// Saved returns the path written, or "" before the frame was reached.
func (p *Plugin) Saved() string { return p.saved }

func (p *Plugin) outputPath() (string, error) {
	name := fmt.Sprintf("%s-frame%d.png", fileStem(p.app), p.opts.Frame)
	if p.opts.Output == "" {
		dir, err := paths.CaptureDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, name), nil
	}
	out, err := paths.Expand(p.opts.Output)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(p.opts.Output, "/") {
		return filepath.Join(out, name), nil
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name), nil
	}
	return out, nil
}

func fileStem(app string) string {
	app = strings.TrimSpace(strings.ToLower(app))
	if app == "" {
		return "vkb"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, app)
}

// Scale resamples img by factor. A factor of 1 returns img unchanged.
func Scale(img *image.RGBA, factor float64) *image.RGBA {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}
