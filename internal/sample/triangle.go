// Package sample holds the software-rendered demo that cmd/vkb runs.
package sample

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/LiangliangNan/Vulkan-Samples/internal/app"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

// Name is the title the triangle sample runs under.
const Name = "Hello Triangle"

// PostDrawer receives every finished frame. *platform.Platform implements it.
type PostDrawer interface {
	OnPostDraw(ctx platform.RenderContext) error
}

var (
	background = color.RGBA{R: 0x10, G: 0x12, B: 0x1a, A: 0xff}
	overlayFG  = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	vertexRGB  = [3]color.RGBA{
		{R: 0xff, A: 0xff},
		{G: 0xff, A: 0xff},
		{B: 0xff, A: 0xff},
	}
)

// Triangle draws a spinning RGB triangle with an fps overlay.
type Triangle struct {
	post    PostDrawer
	frame   *Frame
	angle   float64
	overlay bool
}

var (
	_ app.Preparer     = (*Triangle)(nil)
	_ app.Updater      = (*Triangle)(nil)
	_ app.Resizer      = (*Triangle)(nil)
	_ app.InputHandler = (*Triangle)(nil)
)

// NewTriangle creates the sample. post may be nil.
func NewTriangle(post PostDrawer) *Triangle {
	return &Triangle{post: post, overlay: true}
}

func (t *Triangle) Prepare(a *app.Application) bool {
	t.frame = NewFrame(a.Window().Extent())
	a.Logger().Debug("sample prepared", "app", a.Name(), "extent", t.frame.Extent())
	return true
}

func (t *Triangle) Update(a *app.Application, dt float64) error {
	if t.frame == nil {
		t.frame = NewFrame(a.Window().Extent())
	}
	if dt > 0 && !math.IsInf(dt, 0) {
		t.angle = math.Mod(t.angle+dt*math.Pi/2, 2*math.Pi)
	}
	t.frame.index = a.FrameCount()
	t.render(a.FPS())
	if t.post == nil {
		return nil
	}
	return t.post.OnPostDraw(t.frame)
}

func (t *Triangle) Resize(a *app.Application, extent platform.Extent) platform.Extent {
	index := uint64(0)
	if t.frame != nil {
		index = t.frame.index
	}
	t.frame = NewFrame(extent)
	t.frame.index = index
	return extent
}

// InputEvent closes the window on Escape and toggles the overlay on F1.
func (t *Triangle) InputEvent(a *app.Application, ev platform.InputEvent) {
	key, ok := ev.(platform.KeyEvent)
	if !ok || key.Action != platform.ActionDown {
		return
	}
	switch key.Key {
	case "Escape":
		a.Window().Close()
	case "F1":
		t.overlay = !t.overlay
	}
}

// Frame returns the render target of the last frame.
func (t *Triangle) Frame() *Frame { return t.frame }

func (t *Triangle) render(fps float64) {
	img := t.frame.img
	b := img.Bounds()
	draw.Draw(img, b, image.NewUniform(background), image.Point{}, draw.Src)
	if b.Empty() {
		return
	}

	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	r := math.Min(cx, cy) * 0.8
	var v [3][2]float64
	for i := range v {
		a := t.angle - math.Pi/2 + float64(i)*2*math.Pi/3
		v[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	fillTriangle(img, v)

	if t.overlay {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(overlayFG),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, 8+basicfont.Face7x13.Ascent),
		}
		d.DrawString(fmt.Sprintf("%.1f fps", fps))
	}
}

// fillTriangle rasterizes v with barycentric color interpolation.
func fillTriangle(img *image.RGBA, v [3][2]float64) {
	area := edge(v[0], v[1], v[2])
	if area == 0 {
		return
	}
	minX := math.Floor(math.Min(v[0][0], math.Min(v[1][0], v[2][0])))
	maxX := math.Ceil(math.Max(v[0][0], math.Max(v[1][0], v[2][0])))
	minY := math.Floor(math.Min(v[0][1], math.Min(v[1][1], v[2][1])))
	maxY := math.Ceil(math.Max(v[0][1], math.Max(v[1][1], v[2][1])))
	clip := image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1).Intersect(img.Bounds())

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			p := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			w0 := edge(v[1], v[2], p) / area
			w1 := edge(v[2], v[0], p) / area
			w2 := edge(v[0], v[1], p) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{
				R: blend(w0, w1, w2, func(c color.RGBA) uint8 { return c.R }),
				G: blend(w0, w1, w2, func(c color.RGBA) uint8 { return c.G }),
				B: blend(w0, w1, w2, func(c color.RGBA) uint8 { return c.B }),
				A: 0xff,
			})
		}
	}
}

func edge(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

func blend(w0, w1, w2 float64, ch func(color.RGBA) uint8) uint8 {
	v := w0*float64(ch(vertexRGB[0])) + w1*float64(ch(vertexRGB[1])) + w2*float64(ch(vertexRGB[2]))
	return uint8(math.Min(255, math.Round(v)))
}
