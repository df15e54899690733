package platform

import "image"

// Tag is a stable key a plugin registers under so other components can find it
// without knowing its concrete type.
type Tag string

// Arguments is the parsed configuration handed to plugins during activation.
type Arguments interface {
	// Enabled reports whether the plugin section name is present and switched on.
	Enabled(name string) bool
	// Decode decodes the plugin section name into out.
	Decode(name string, out any) error
}

// RenderContext is what PostDraw subscribers get to inspect the frame just drawn.
type RenderContext interface {
	Extent() Extent
	FrameIndex() uint64
	ReadPixels() (*image.RGBA, error)
}

// Plugin extends the platform through lifecycle hooks.
type Plugin interface {
	Name() string
	Description() string
	Tags() []Tag
	Hooks() []Hook

	// Activate decides from args whether the plugin takes part in this run.
	// Returning false leaves the plugin out; it is not an error.
	Activate(p *Platform, args Arguments) bool

	OnUpdate(dt float64) error
	OnAppStart(app string)
	OnAppClose(app string)
	OnAppError(app string)
	OnPlatformClose()
	OnPostDraw(ctx RenderContext) error

	// Shutdown releases anything the plugin acquired in Activate.
	Shutdown()
}

// PluginBase supplies the descriptive methods and no-op handlers. Concrete
// plugins embed it and override the hooks they subscribe to.
type PluginBase struct {
	PluginName        string
	PluginDescription string
	PluginTags        []Tag
	PluginHooks       []Hook
}

func (b *PluginBase) Name() string { return b.PluginName }
func (b *PluginBase) Description() string { return b.PluginDescription }

func (b *PluginBase) Tags() []Tag {
	out := make([]Tag, len(b.PluginTags))
	copy(out, b.PluginTags)
	return out
}

func (b *PluginBase) Hooks() []Hook {
	out := make([]Hook, len(b.PluginHooks))
	copy(out, b.PluginHooks)
	return out
}

func (b *PluginBase) OnUpdate(float64) error { return nil }
func (b *PluginBase) OnAppStart(string) {}
func (b *PluginBase) OnAppClose(string) {}
func (b *PluginBase) OnAppError(string) {}
func (b *PluginBase) OnPlatformClose() {}
func (b *PluginBase) OnPostDraw(RenderContext) error { return nil }
func (b *PluginBase) Shutdown() {}
