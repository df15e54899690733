package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/app"
	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/logging"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins"
	"github.com/LiangliangNan/Vulkan-Samples/internal/sample"
)

type override struct {
	flag  string
	path  string
	apply func(*config.Config)
}

func printRunUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: vkb run [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run the triangle sample. Flags override the config file.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func runSample(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/vkb/config.yaml)")
	headless := fs.Bool("headless", false, "Run without a window (same as --mode headless)")
	mode := fs.String("mode", "", "Window mode: headless, fullscreen, fullscreen-borderless, fullscreen-stretch, default")
	title := fs.String("title", "", "Window title")
	width := fs.Uint("width", 0, "Window width")
	height := fs.Uint("height", 0, "Window height")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warning, error")
	stopAfter := fs.Int("stop-after", 0, "Close after N frames")
	fpsLog := fs.Duration("fps-log", 0, "Log fps at this interval")
	benchmark := fs.Bool("benchmark", false, "Log a frame-timing summary at exit")
	screenshot := fs.Uint64("screenshot", 0, "Save frame N as PNG")
	screenshotOut := fs.String("screenshot-output", "", "PNG path or directory for --screenshot")
	remote := fs.String("remote", "", "Serve MCP control tools on host:port")
	probe := fs.Bool("vulkan-probe", false, "Create and destroy a Vulkan surface before running")
	fs.Usage = func() { printRunUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "run takes no arguments, got %q\n\n", fs.Args())
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	overrides := []override{
		{"mode", "window.mode", func(c *config.Config) { c.Window.Mode = *mode }},
		{"headless", "window.mode", func(c *config.Config) {
			if *headless {
				c.Window.Mode = platform.ModeHeadless.String()
			}
		}},
		{"title", "window.title", func(c *config.Config) { c.Window.Title = *title }},
		{"width", "window.width", func(c *config.Config) { c.Window.Width = uint32(*width) }},
		{"height", "window.height", func(c *config.Config) { c.Window.Height = uint32(*height) }},
		{"log-level", "logging.level", func(c *config.Config) { c.Logging.Level = *logLevel }},
		{"stop-after", "plugins.stop_after", func(c *config.Config) { c.Plugins.StopAfter.Enabled = true }},
		{"stop-after", "plugins.stop_after.frames", func(c *config.Config) { c.Plugins.StopAfter.Frames = *stopAfter }},
		{"fps-log", "plugins.fps_logger", func(c *config.Config) { c.Plugins.FPSLogger.Enabled = true }},
		{"fps-log", "plugins.fps_logger.interval", func(c *config.Config) { c.Plugins.FPSLogger.Interval = *fpsLog }},
		{"benchmark", "plugins.benchmark.enabled", func(c *config.Config) { c.Plugins.Benchmark.Enabled = *benchmark }},
		{"screenshot", "plugins.screenshot", func(c *config.Config) { c.Plugins.Screenshot.Enabled = true }},
		{"screenshot", "plugins.screenshot.frame", func(c *config.Config) { c.Plugins.Screenshot.Frame = *screenshot }},
		{"screenshot-output", "plugins.screenshot.output", func(c *config.Config) { c.Plugins.Screenshot.Output = *screenshotOut }},
		{"remote", "plugins.remote", func(c *config.Config) { c.Plugins.Remote.Enabled = true }},
		{"remote", "plugins.remote.address", func(c *config.Config) { c.Plugins.Remote.Address = *remote }},
	}
	if err := applyOverrides(fs, res, overrides); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	return runApplication(res.Config, *probe, stderr)
}

// applyOverrides applies the overrides whose flag was given on the command line.
func applyOverrides(fs *flag.FlagSet, res *config.LoadResult, overrides []override) error {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, o := range overrides {
		if !set[o.flag] {
			continue
		}
		if err := res.Override(o.path, "--"+o.flag, o.apply); err != nil {
			return err
		}
	}
	return nil
}

func runApplication(cfg *config.Config, probe bool, stderr io.Writer) int {
	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.SlogLevel(),
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Console: stderr,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return app.ExitFailure
	}
	// The file sink outlives Finish so the closing lines below still land in it.
	defer closer.Close()

	props, err := cfg.Properties()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return app.ExitFailure
	}
	if props.Title == "" {
		props.Title = sample.Name
	}

	clk := clock.New()
	host, err := platform.New(platform.Options{
		Logger:    logger,
		Plugins:   plugins.All(clk),
		Arguments: cfg,
	})
	if err != nil {
		logger.Error("platform init failed", "error", err)
		return app.ExitFailure
	}

	tri := sample.NewTriangle(host)
	a, err := app.New(host,
		app.WithProperties(props),
		app.WithDelegate(tri),
		app.WithLogger(logger),
		app.WithClock(clk),
	)
	if err != nil {
		logger.Error("cannot start", "app", props.Title, "error", err)
		host.Finish()
		return app.ExitFailure
	}

	if probe {
		if err := probeVulkan(a.Window(), logger); err != nil {
			logger.Error("vulkan probe failed", "error", err)
			a.Finish()
			return app.ExitFailure
		}
	}

	stop := watchSignals(host, logger)
	defer stop()

	if !a.Prepare() {
		a.Finish()
		return app.ExitFailure
	}
	start := time.Now()
	code := a.Run()
	logger.Debug("run finished", "app", a.Name(), "frames", a.FrameCount(), "elapsed", time.Since(start), "exit", code)
	return code
}

// watchSignals turns SIGINT and SIGTERM into a close request. The returned
// func stops watching.
func watchSignals(host *platform.Platform, logger *slog.Logger) func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("signal received, closing", "signal", sig.String())
			host.RequestClose()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
