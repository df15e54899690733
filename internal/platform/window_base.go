package platform

// baseDensity is the dots per inch that maps to a DPI factor of 1.
const baseDensity = 96.0

// windowBase holds the state every backend shares. Backends embed it and
// override what their toolkit does differently.
type windowBase struct {
	properties Properties
	closed     bool
	destroyed  bool
	surface    Surface
	hasSurface bool
}

func newWindowBase(props Properties) windowBase {
	return windowBase{properties: props}
}

func (w *windowBase) Properties() Properties { return w.properties }

func (w *windowBase) Extent() Extent { return w.properties.Extent }

func (w *windowBase) Mode() Mode { return w.properties.Mode }

// SetTitle updates the stored title. Backends with a native title call this too.
func (w *windowBase) SetTitle(title string) {
	w.properties.Title = title
}

// Resize accepts the request verbatim.
func (w *windowBase) Resize(extent Extent) Extent {
	w.properties.Extent = extent
	return extent
}

func (w *windowBase) ShouldClose() bool { return w.closed }

func (w *windowBase) Close() { w.closed = true }

func (w *windowBase) DisplayPresentInfo(_ *DisplayPresentInfo, _, _ uint32) bool {
	return false
}

// clampExtent limits a requested extent to the largest size the screen can
// hold. A zero bound means unbounded on that axis.
func clampExtent(requested Extent, maxWidth, maxHeight uint32) Extent {
	if maxWidth > 0 && requested.Width > maxWidth {
		requested.Width = maxWidth
	}
	if maxHeight > 0 && requested.Height > maxHeight {
		requested.Height = maxHeight
	}
	return requested
}

// settleExtent is the size a native backend ends up at for a request. A
// non-resizable window keeps its current extent; otherwise the request is
// clamped to the screen.
func settleExtent(current, requested Extent, resizable bool, maxWidth, maxHeight uint32) Extent {
	if !resizable {
		return current
	}
	return clampExtent(requested, maxWidth, maxHeight)
}

// cachedSurface returns the surface from an earlier successful CreateSurface.
func (w *windowBase) cachedSurface() (Surface, bool) {
	return w.surface, w.hasSurface
}

func (w *windowBase) storeSurface(s Surface) {
	w.surface = s
	w.hasSurface = true
}
