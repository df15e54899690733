package platform

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// Options configures a Platform.
type Options struct {
	Logger *slog.Logger
	// Plugins are the candidates considered for activation, in order.
	Plugins   []Plugin
	Arguments Arguments
	// LogCloser, if set, is closed last in Finish.
	LogCloser io.Closer
}

// Platform owns the active plugins and their hook table, and builds the window
// for the application.
type Platform struct {
	logger    *slog.Logger
	args      Arguments
	logCloser io.Closer

	active []Plugin
	tagged map[Tag]Plugin
	hooks  *HookTable

	window       Window
	closeRequest atomic.Bool
	finished     bool
}

// New activates the candidate plugins in order and seals the hook table.
// A plugin that declines activation is left out.
func New(opts Options) (*Platform, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	args := opts.Arguments
	if args == nil {
		args = noArguments{}
	}

	p := &Platform{
		logger:    logger,
		args:      args,
		logCloser: opts.LogCloser,
		tagged:    make(map[Tag]Plugin),
		hooks:     NewHookTable(),
	}
	logger.Info("logger initialized")

	for _, plugin := range opts.Plugins {
		if plugin == nil {
			continue
		}
		if !plugin.Activate(p, args) {
			logger.Debug("plugin not activated", "plugin", plugin.Name())
			continue
		}
		for _, h := range uniqueHooks(plugin.Hooks()) {
			if err := p.hooks.Subscribe(h, plugin); err != nil {
				return nil, fmt.Errorf("activate %s: %w", plugin.Name(), err)
			}
		}
		for _, tag := range plugin.Tags() {
			if existing, ok := p.tagged[tag]; ok {
				logger.Warn("plugin tag already taken", "tag", tag, "plugin", plugin.Name(), "owner", existing.Name())
				continue
			}
			p.tagged[tag] = plugin
		}
		p.active = append(p.active, plugin)
		logger.Debug("plugin activated", "plugin", plugin.Name())
	}
	p.hooks.Seal()

	return p, nil
}

func (p *Platform) Logger() *slog.Logger { return p.logger }

func (p *Platform) Arguments() Arguments { return p.args }

// Hooks exposes the sealed hook table.
func (p *Platform) Hooks() *HookTable { return p.hooks }

// ActivePlugins returns the activated plugins in activation order.
func (p *Platform) ActivePlugins() []Plugin {
	out := make([]Plugin, len(p.active))
	copy(out, p.active)
	return out
}

// Plugin returns the active plugin registered under tag.
func (p *Platform) Plugin(tag Tag) (Plugin, bool) {
	plugin, ok := p.tagged[tag]
	return plugin, ok
}

func (p *Platform) UsingPlugin(tag Tag) bool {
	_, ok := p.tagged[tag]
	return ok
}

// Update dispatches the update hook. The first plugin error aborts the dispatch
// and is returned.
func (p *Platform) Update(dt float64) error {
	return p.hooks.Dispatch(OnUpdate, func(plugin Plugin) error {
		return plugin.OnUpdate(dt)
	})
}

// OnPostDraw dispatches the post-draw hook with the frame just rendered.
func (p *Platform) OnPostDraw(ctx RenderContext) error {
	return p.hooks.Dispatch(PostDraw, func(plugin Plugin) error {
		return plugin.OnPostDraw(ctx)
	})
}

func (p *Platform) OnPlatformClose() {
	_ = p.hooks.Dispatch(OnPlatformClose, func(plugin Plugin) error {
		plugin.OnPlatformClose()
		return nil
	})
}

// AppStarted dispatches the app-start hook.
func (p *Platform) AppStarted(app string) {
	_ = p.hooks.Dispatch(OnAppStart, func(plugin Plugin) error {
		plugin.OnAppStart(app)
		return nil
	})
}

// AppFailed dispatches the app-error hook.
func (p *Platform) AppFailed(app string) {
	_ = p.hooks.Dispatch(OnAppError, func(plugin Plugin) error {
		plugin.OnAppError(app)
		return nil
	})
}

// AppClosed dispatches the app-close hook.
func (p *Platform) AppClosed(app string) {
	_ = p.hooks.Dispatch(OnAppClose, func(plugin Plugin) error {
		plugin.OnAppClose(app)
		return nil
	})
}

// RequestClose asks the loop to stop after the current iteration. Plugins may
// call it during activation; signal handlers may call it from any goroutine.
func (p *Platform) RequestClose() { p.closeRequest.Store(true) }

func (p *Platform) ShouldClose() bool { return p.closeRequest.Load() }

// Finish tears the plugins down. Only the first call has any effect.
func (p *Platform) Finish() {
	if p.finished {
		return
	}
	p.finished = true

	p.OnPlatformClose()
	for i := len(p.active) - 1; i >= 0; i-- {
		p.active[i].Shutdown()
	}
	p.logger.Info("plugins terminated")

	if p.logCloser != nil {
		if err := p.logCloser.Close(); err != nil {
			p.logger.Warn("failed to close log sink", "error", err)
		}
	}
}

// CreateWindow builds the window for props: the headless backend for
// ModeHeadless, otherwise the native backend of this build.
func (p *Platform) CreateWindow(owner WindowOwner, props Properties) (Window, error) {
	var (
		w   Window
		err error
	)
	if props.Mode == ModeHeadless {
		w = NewHeadlessWindow(props)
	} else {
		w, err = newNativeWindow(owner, props, p.logger)
		if err != nil {
			p.logger.Error("failed to create window", "backend", nativeBackendName, "mode", props.Mode, "error", err)
			return nil, fmt.Errorf("create %s window: %w", nativeBackendName, err)
		}
	}
	p.window = w
	p.logger.Debug("window created", "backend", p.backendName(props), "extent", w.Extent())
	return w, nil
}

func uniqueHooks(hooks []Hook) []Hook {
	seen := make(map[Hook]bool, len(hooks))
	out := hooks[:0:0]
	for _, h := range hooks {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// Window returns the window made by CreateWindow, or nil.
func (p *Platform) Window() Window { return p.window }

func (p *Platform) backendName(props Properties) string {
	if props.Mode == ModeHeadless {
		return "headless"
	}
	return nativeBackendName
}

// NativeBackend names the window backend compiled into this build.
func NativeBackend() string { return nativeBackendName }

type noArguments struct{}

func (noArguments) Enabled(string) bool { return false }

func (noArguments) Decode(string, any) error { return nil }
