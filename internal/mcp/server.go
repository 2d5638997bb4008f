// ABOUTME: MCP server for jot integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts over the lifecycle controller.

package mcp

import (
	"context"
	"sync"

	"github.com/harper/jot/internal/notes"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server

	// mu serializes handler access; the controller is single-threaded.
	mu   sync.Mutex
	ctrl *notes.Controller
}

func NewServer(ctrl *notes.Controller, version string) *Server {
	s := &Server{ctrl: ctrl}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "jot",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
