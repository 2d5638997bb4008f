// ABOUTME: MCP prompts for common note lifecycle workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "tidy-notes",
		Description: "Review active notes and suggest which to archive or trash",
	}, s.getTidyNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-trash",
		Description: "Walk through the trash and decide what to restore or delete forever",
	}, s.getReviewTrashPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "find-notes",
		Description: "Search all views for notes about a topic",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "Text to search for",
				Required:    true,
			},
		},
	}, s.getFindNotesPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getTidyNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me tidy my notes:

1. Use the list_notes tool with view "active" to see my current notes
2. Identify notes that are finished, stale, or only kept for reference
3. Suggest which should be archived and which can go to the trash
4. Ask me to confirm, then use bulk_apply with action "archive" or "trash"

Nothing is deleted by this step; trashed notes can still be restored.`), nil
}

func (s *Server) getReviewTrashPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me empty my trash safely:

1. Use the list_notes tool with view "trash"
2. For each note, tell me its title and a one-line summary
3. Point out anything that still looks useful
4. Use move_note with to "active" for notes I want back
5. Only after I confirm, use delete_forever for the rest

Deleting from the trash is permanent.`), nil
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the note with ID: %s

1. Use the get_note tool to retrieve the note content
2. Read and analyze the note
3. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or takeaways
   - Important details or action items
4. Use the update_note tool to add a "Summary" section at the top of the note`, noteID)), nil
}

func (s *Server) getFindNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		return nil, fmt.Errorf("topic argument is required")
	}

	return userPrompt(fmt.Sprintf(`Find my notes about: %s

1. Use the list_notes tool with query %q for each view: "active", "archive", and "trash"
2. Group the results by view
3. Mention any matches in the trash, since those will be lost if the trash is emptied`, topic, topic)), nil
}
