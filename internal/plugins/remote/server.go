package remote

import (
	"context"
	"fmt"
	"strings"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "vkb"
	ServerVersion = "0.1.0"

	queueSize = 16
)

type commandKind int

const (
	cmdClose commandKind = iota
	cmdSetTitle
)

type command struct {
	kind   commandKind
	title  string
	reason string
}

// Server exposes the running sample as MCP tools. Handlers run on HTTP
// goroutines; they only read the status snapshot and enqueue commands.
type Server struct {
	mcpServer *mcpsdk.Server
	commands  chan command

	mu          sync.Mutex
	status      StatusOutput
	closeQueued bool
}

// NewServer creates the tool server. It does not listen.
func NewServer() *Server {
	s := &Server{
		commands: make(chan command, queueSize),
		status:   StatusOutput{State: "starting"},
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcpsdk.Server { return s.mcpServer }

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "status",
		Description: "Report the running sample: application name, loop state, frame count, fps and window extent.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "request_close",
		Description: "Ask the sample to close. The main loop exits after the current frame and plugins shut down normally.",
	}, s.handleRequestClose)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Change the window title. Applied on the next frame.",
	}, s.handleSetTitle)
}

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	return nil, s.Snapshot(), nil
}

func (s *Server) handleRequestClose(_ context.Context, _ *mcpsdk.CallToolRequest, args RequestCloseInput) (*mcpsdk.CallToolResult, Ack, error) {
	if err := s.enqueue(command{kind: cmdClose, reason: strings.TrimSpace(args.Reason)}); err != nil {
		return nil, Ack{}, err
	}
	s.mu.Lock()
	s.closeQueued = true
	s.mu.Unlock()
	return nil, Ack{Queued: true}, nil
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, Ack, error) {
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return nil, Ack{}, fmt.Errorf("title is required")
	}
	if err := s.enqueue(command{kind: cmdSetTitle, title: title}); err != nil {
		return nil, Ack{}, err
	}
	return nil, Ack{Queued: true}, nil
}

func (s *Server) enqueue(c command) error {
	select {
	case s.commands <- c:
		return nil
	default:
		return fmt.Errorf("command queue full (%d pending)", queueSize)
	}
}

// drain returns every queued command without blocking.
func (s *Server) drain() []command {
	var out []command
	for {
		select {
		case c := <-s.commands:
			out = append(out, c)
		default:
			return out
		}
	}
}

// Snapshot returns a copy of the published status.
func (s *Server) Snapshot() StatusOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.status
	out.CloseQueued = s.closeQueued
	out.PendingCount = len(s.commands)
	return out
}

func (s *Server) publish(update func(*StatusOutput)) {
	s.mu.Lock()
	update(&s.status)
	s.mu.Unlock()
}
