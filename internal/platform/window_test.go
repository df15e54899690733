package platform

import (
	"errors"
	"testing"
)

type fakeInstance struct {
	surface Surface
	err     error
	calls   int
}

func (f *fakeInstance) CreateHeadlessSurface(PhysicalDevice) (Surface, error) {
	f.calls++
	return f.surface, f.err
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"headless", ModeHeadless, false},
		{"Fullscreen", ModeFullscreen, false},
		{"borderless", ModeFullscreenBorderless, false},
		{"fullscreen-stretch", ModeFullscreenStretch, false},
		{"windowed", ModeDefault, false},
		{"", ModeDefault, false},
		{"tiled", ModeDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultProperties(t *testing.T) {
	p := DefaultProperties()
	if p.Extent != (Extent{Width: 1280, Height: 720}) {
		t.Fatalf("expected 1280x720, got %v", p.Extent)
	}
	if !p.Resizable || p.Mode != ModeDefault || p.Vsync != VsyncDefault {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestHeadlessWindowBasics(t *testing.T) {
	w := NewHeadlessWindow(DefaultProperties())
	if !w.IsVisible() || w.IsFocused() {
		t.Fatalf("expected visible and unfocused headless window")
	}
	if w.ShouldClose() {
		t.Fatalf("expected new window to stay open")
	}
	w.Close()
	w.Close()
	if !w.ShouldClose() {
		t.Fatalf("expected ShouldClose after Close")
	}
	if err := w.ProcessEvents(); err != nil {
		t.Fatalf("ProcessEvents() error: %v", err)
	}
	if !w.ShouldClose() {
		t.Fatalf("expected ShouldClose to stay true")
	}
}

func TestHeadlessWindowResizeAndTitle(t *testing.T) {
	w := NewHeadlessWindow(DefaultProperties())
	if got := w.Resize(Extent{Width: 800, Height: 600}); got != (Extent{Width: 800, Height: 600}) {
		t.Fatalf("Resize() = %v, want 800x600", got)
	}
	if w.Extent() != (Extent{Width: 800, Height: 600}) {
		t.Fatalf("expected stored extent 800x600, got %v", w.Extent())
	}
	if got := w.Resize(Extent{}); !got.IsZero() {
		t.Fatalf("expected minimized extent to be accepted, got %v", got)
	}
	w.SetTitle("renamed")
	if w.Properties().Title != "renamed" {
		t.Fatalf("expected title renamed, got %q", w.Properties().Title)
	}
}

func TestHeadlessWindowDisplayPresentInfo(t *testing.T) {
	w := NewHeadlessWindow(DefaultProperties())
	info := DisplayPresentInfo{Persistent: true}
	if w.DisplayPresentInfo(&info, 10, 10) {
		t.Fatalf("expected DisplayPresentInfo to report false")
	}
	if !info.Persistent {
		t.Fatalf("expected info to be untouched")
	}
}

func TestHeadlessCreateSurface(t *testing.T) {
	w := NewHeadlessWindow(DefaultProperties())
	inst := &fakeInstance{surface: 7}

	s, err := w.CreateSurface(inst, nil)
	if err != nil {
		t.Fatalf("CreateSurface() error: %v", err)
	}
	again, err := w.CreateSurface(inst, nil)
	if err != nil || again != s {
		t.Fatalf("expected cached surface %d, got %d (%v)", s, again, err)
	}
	if inst.calls != 1 {
		t.Fatalf("expected one binder call, got %d", inst.calls)
	}
}

func TestHeadlessCreateSurfaceErrors(t *testing.T) {
	w := NewHeadlessWindow(DefaultProperties())

	_, err := w.CreateSurface(struct{}{}, nil)
	var sce *SurfaceCreationError
	if !errors.As(err, &sce) || sce.Backend != "headless" {
		t.Fatalf("expected headless SurfaceCreationError, got %v", err)
	}
	if !errors.Is(err, ErrSurfaceCreation) {
		t.Fatalf("expected errors.Is(err, ErrSurfaceCreation)")
	}

	cause := errors.New("device lost")
	_, err = w.CreateSurface(&fakeInstance{err: cause}, nil)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}

	w.Destroy()
	_, err = w.CreateSurface(&fakeInstance{surface: 1}, nil)
	if !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed after Destroy, got %v", err)
	}
}

func TestSurfaceExtensionsStable(t *testing.T) {
	w := NewHeadlessWindow(DefaultProperties())
	before := w.SurfaceExtensions()
	w.Close()
	after := w.SurfaceExtensions()
	if len(before) != 2 || len(after) != 2 || before[1] != after[1] {
		t.Fatalf("expected stable extension list, got %v then %v", before, after)
	}
}

func TestClampExtent(t *testing.T) {
	tests := []struct {
		name       string
		in         Extent
		maxW, maxH uint32
		want       Extent
	}{
		{"fits", Extent{800, 600}, 1920, 1080, Extent{800, 600}},
		{"too wide", Extent{4000, 600}, 1920, 1080, Extent{1920, 600}},
		{"unbounded", Extent{4000, 3000}, 0, 0, Extent{4000, 3000}},
		{"minimized", Extent{}, 1920, 1080, Extent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampExtent(tt.in, tt.maxW, tt.maxH); got != tt.want {
				t.Fatalf("clampExtent(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSettleExtent(t *testing.T) {
	current := Extent{Width: 1280, Height: 720}
	tests := []struct {
		name      string
		requested Extent
		resizable bool
		want      Extent
	}{
		{"resizable accepts", Extent{Width: 800, Height: 600}, true, Extent{Width: 800, Height: 600}},
		{"resizable clamps", Extent{Width: 4000, Height: 600}, true, Extent{Width: 1920, Height: 600}},
		{"resizable minimized", Extent{}, true, Extent{}},
		{"fixed keeps extent", Extent{Width: 800, Height: 600}, false, current},
		{"fixed ignores minimize", Extent{}, false, current},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := settleExtent(current, tt.requested, tt.resizable, 1920, 1080); got != tt.want {
				t.Fatalf("settleExtent(%v, resizable=%v) = %v, want %v", tt.requested, tt.resizable, got, tt.want)
			}
		})
	}
}
