package platform

import "fmt"

// HeadlessWindow has no on-screen presence. It is available on every target and
// is what the factory returns for ModeHeadless.
type HeadlessWindow struct {
	windowBase
}

var _ Window = (*HeadlessWindow)(nil)

// NewHeadlessWindow creates a headless window.
func NewHeadlessWindow(props Properties) *HeadlessWindow {
	return &HeadlessWindow{windowBase: newWindowBase(props)}
}

func (w *HeadlessWindow) CreateSurface(instance Instance, device PhysicalDevice) (Surface, error) {
	if s, ok := w.cachedSurface(); ok {
		return s, nil
	}
	if w.destroyed {
		return 0, &SurfaceCreationError{Backend: "headless", Err: ErrWindowClosed}
	}
	binder, ok := instance.(HeadlessSurfaceBinder)
	if !ok {
		return 0, &SurfaceCreationError{
			Backend: "headless",
			Err:     fmt.Errorf("instance %T does not support headless surfaces", instance),
		}
	}
	s, err := binder.CreateHeadlessSurface(device)
	if err != nil {
		return 0, &SurfaceCreationError{Backend: "headless", Err: err}
	}
	w.storeSurface(s)
	return s, nil
}

func (w *HeadlessWindow) SurfaceExtensions() []string {
	return []string{"VK_KHR_surface", "VK_EXT_headless_surface"}
}

func (w *HeadlessWindow) IsVisible() bool { return true }

func (w *HeadlessWindow) IsFocused() bool { return false }

func (w *HeadlessWindow) ProcessEvents() error { return nil }

func (w *HeadlessWindow) DPIFactor() float64 { return 1 }

func (w *HeadlessWindow) ContentScaleFactor() float64 { return 1 }

func (w *HeadlessWindow) Destroy() {
	w.destroyed = true
	w.closed = true
}
