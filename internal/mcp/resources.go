// ABOUTME: MCP resources for exposing notes and views as readable resources.
// ABOUTME: Allows AI agents to read note content via the jot:// URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/jot/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	noteURIPrefix = "jot://note/"
	viewURIPrefix = "jot://view/"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadNote,
	)

	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: viewURIPrefix + "{view}",
			Name:        "View",
			Description: "List the notes in active, archive, or trash",
			MIMEType:    "text/markdown",
		},
		s.handleReadView,
	)
}

func (s *Server) handleReadNote(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	s.mu.Lock()
	note, view, err := s.ctrl.ResolveAny(ref)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n", note.Title)
	content += fmt.Sprintf("**In:** %s  **Updated:** %s\n\n", view, note.UpdatedAt.Format(models.TimeLayout))
	content += note.Content

	return markdownResource(req.Params.URI, content), nil
}

func (s *Server) handleReadView(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	name, ok := strings.CutPrefix(req.Params.URI, viewURIPrefix)
	if !ok {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}
	view, err := models.ParseView(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	list := s.ctrl.VisibleNotes(view, "")
	s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s (%d)\n\n", view, len(list)))
	for _, n := range list {
		sb.WriteString(fmt.Sprintf("- `%s` %s\n", n.ID, n.Title))
	}

	return markdownResource(req.Params.URI, sb.String()), nil
}

func markdownResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     text,
			},
		},
	}
}
