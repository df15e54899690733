// Package remote serves an MCP control endpoint over streamable HTTP so an
// agent or script can inspect and steer a running sample.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/paths"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

const Tag platform.Tag = "remote"

const shutdownTimeout = 2 * time.Second

type Options struct {
	Address string `yaml:"address"`
}

type Plugin struct {
	platform.PluginBase

	host     *platform.Platform
	logger   *slog.Logger
	server   *Server
	http     *http.Server
	addr     string
	addrFile string
	done     chan struct{}
	fpsAvg   float64
}

var _ platform.Plugin = (*Plugin)(nil)

func New() *Plugin {
	return &Plugin{
		PluginBase: platform.PluginBase{
			PluginName:        "remote",
			PluginDescription: "Serve MCP control tools over HTTP",
			PluginTags:        []platform.Tag{Tag},
			PluginHooks: []platform.Hook{
				platform.OnAppStart,
				platform.OnUpdate,
				platform.OnAppClose,
				platform.OnAppError,
			},
		},
	}
}

func (p *Plugin) Activate(host *platform.Platform, args platform.Arguments) bool {
	if !args.Enabled(config.PluginRemote) {
		return false
	}
	var opts Options
	if err := args.Decode(config.PluginRemote, &opts); err != nil {
		host.Logger().Warn("remote: bad options", "error", err)
		return false
	}
	p.host = host
	p.logger = host.Logger()
	p.server = NewServer()
	if err := p.listen(opts.Address); err != nil {
		p.logger.Warn("remote: listen failed", "address", opts.Address, "error", err)
		return false
	}
	return true
}

func (p *Plugin) listen(address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return p.server.MCP()
	}, nil)
	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)

	p.addr = ln.Addr().String()
	p.http = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		if err := p.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("remote: serve failed", "error", err)
		}
	}()

	if path, err := paths.RemoteAddrPath(); err != nil {
		p.logger.Warn("remote: cannot resolve address file", "error", err)
	} else if err := os.WriteFile(path, []byte("http://"+p.addr+"/mcp\n"), 0600); err != nil {
		p.logger.Warn("remote: cannot publish address", "path", path, "error", err)
	} else {
		p.addrFile = path
	}
	p.logger.Info("remote control listening", "url", p.URL())
	return nil
}

// Addr is the bound listen address, or "" when inactive.
func (p *Plugin) Addr() string { return p.addr }

// URL is the MCP endpoint.
func (p *Plugin) URL() string {
	if p.addr == "" {
		return ""
	}
	return fmt.Sprintf("http://%s/mcp", p.addr)
}

// Server returns the tool server.
func (p *Plugin) Server() *Server { return p.server }

func (p *Plugin) OnAppStart(app string) {
	p.server.publish(func(s *StatusOutput) {
		s.App = app
		s.State = "running"
	})
}

func (p *Plugin) OnAppClose(string) {
	p.server.publish(func(s *StatusOutput) { s.State = "closed" })
}

func (p *Plugin) OnAppError(string) {
	p.server.publish(func(s *StatusOutput) { s.State = "failed" })
}

// OnUpdate applies queued commands on the loop goroutine and refreshes the
// status snapshot.
func (p *Plugin) OnUpdate(dt float64) error {
	for _, c := range p.server.drain() {
		switch c.kind {
		case cmdClose:
			p.logger.Info("remote: close requested", "reason", c.reason)
			p.host.RequestClose()
		case cmdSetTitle:
			if w := p.host.Window(); w != nil {
				w.SetTitle(c.title)
			}
		}
	}

	if dt > 0 {
		fps := 1 / dt
		if p.fpsAvg == 0 {
			p.fpsAvg = fps
		} else {
			p.fpsAvg = 0.9*p.fpsAvg + 0.1*fps
		}
	}
	var title string
	var extent platform.Extent
	if w := p.host.Window(); w != nil {
		title = w.Properties().Title
		extent = w.Extent()
	}
	p.server.publish(func(s *StatusOutput) {
		s.Frames++
		s.FPS = p.fpsAvg
		s.FrameTimeMS = dt * 1000
		s.Title = title
		s.Width = extent.Width
		s.Height = extent.Height
	})
	return nil
}

func (p *Plugin) Shutdown() {
	if p.http == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := p.http.Shutdown(ctx); err != nil {
		p.logger.Warn("remote: shutdown", "error", err)
		_ = p.http.Close()
	}
	<-p.done
	if p.addrFile != "" {
		_ = os.Remove(p.addrFile)
		p.addrFile = ""
	}
	p.http = nil
}
