// ABOUTME: MCP tools for note lifecycle operations.
// ABOUTME: Maps controller operations to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/jot/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_note
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note in the active collection",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title (defaults to Untitled)"},
				"content": {"type": "string", "description": "Note content"}
			}
		}`),
	}, s.handleAddNote)

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes in a view, optionally filtered by a search query",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"view": {"type": "string", "enum": ["active", "archive", "trash"], "default": "active"},
				"query": {"type": "string", "description": "Case-insensitive text to match in title or content"}
			}
		}`),
	}, s.handleListNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or prefix from any view",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title or content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// move_note
	s.server.AddTool(&mcp.Tool{
		Name:        "move_note",
		Description: "Move a note to another view (archive, trash, or restore to active)",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"to": {"type": "string", "enum": ["active", "archive", "trash"]}
			},
			"required": ["id", "to"]
		}`),
	}, s.handleMoveNote)

	// delete_forever
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_forever",
		Description: "Permanently delete a note that is in the trash",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteForever)

	// bulk_apply
	s.server.AddTool(&mcp.Tool{
		Name:        "bulk_apply",
		Description: "Apply trash, archive, or restore to several notes in one view. Trashing from the trash deletes permanently.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"action": {"type": "string", "enum": ["trash", "archive", "restore"]},
				"view": {"type": "string", "enum": ["active", "archive", "trash"]},
				"ids": {"type": "array", "items": {"type": "string"}, "description": "Note IDs or prefixes"}
			},
			"required": ["action", "view", "ids"]
		}`),
	}, s.handleBulkApply)

	// stats
	s.server.AddTool(&mcp.Tool{
		Name:        "stats",
		Description: "Count notes in each view",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleStats)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// Tool handlers.
func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := s.ctrl.Create(params.Title, params.Content)
	return textResult(fmt.Sprintf("Created note %s", note.ID)), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		View  string `json:"view"`
		Query string `json:"query"`
	}
	params.View = string(models.ViewActive)
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	view, err := models.ParseView(params.View)
	if err != nil {
		return errorResult("%v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.SetSearchQuery(params.Query)
	return jsonResult(s.ctrl.VisibleNotes(view, s.ctrl.SearchQuery())), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, view, err := s.ctrl.ResolveAny(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}

	return jsonResult(struct {
		View models.View `json:"view"`
		Note models.Note `json:"note"`
	}{view, note}), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string  `json:"id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, view, err := s.ctrl.ResolveAny(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	if view == models.ViewTrash {
		return errorResult("note %s is in the trash; restore it before editing", note.ID), nil
	}

	title, content := note.Title, note.Content
	if params.Title != nil {
		title = *params.Title
	}
	if params.Content != nil {
		content = *params.Content
	}

	if err := s.ctrl.SwitchView(view); err != nil {
		return errorResult("%v", err), nil
	}
	if !s.ctrl.Update(note.ID, title, content) {
		return errorResult("note %s not found in %s", note.ID, view), nil
	}
	return textResult(fmt.Sprintf("Updated note %s", note.ID)), nil
}

func (s *Server) handleMoveNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
		To string `json:"to"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	to, err := models.ParseView(params.To)
	if err != nil {
		return errorResult("%v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, from, err := s.ctrl.ResolveAny(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	if _, err := s.ctrl.MoveNote(note.ID, from, to); err != nil {
		return errorResult("failed to move note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Moved note %s from %s to %s", note.ID, from, to)), nil
}

func (s *Server) handleDeleteForever(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.ctrl.Resolve(models.ViewTrash, params.ID)
	if err != nil {
		return errorResult("failed to find note in trash: %v", err), nil
	}
	s.ctrl.DeleteForever(note.ID)
	return textResult(fmt.Sprintf("Deleted note %s forever", note.ID)), nil
}

func (s *Server) handleBulkApply(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Action string   `json:"action"`
		View   string   `json:"view"`
		IDs    []string `json:"ids"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	action, err := models.ParseAction(params.Action)
	if err != nil {
		return errorResult("%v", err), nil
	}
	view, err := models.ParseView(params.View)
	if err != nil {
		return errorResult("%v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(params.IDs))
	for _, ref := range params.IDs {
		// Unresolvable refs pass through and become no-ops.
		if note, err := s.ctrl.Resolve(view, ref); err == nil {
			ref = note.ID
		}
		ids = append(ids, ref)
	}

	n := s.ctrl.BulkApply(action, ids, view)
	return textResult(fmt.Sprintf("Applied %s to %d of %d notes in %s", action, n, len(ids), view)), nil
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for view, n := range s.ctrl.Counts() {
		counts[string(view)] = n
	}
	return jsonResult(counts), nil
}
