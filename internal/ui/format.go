// ABOUTME: Terminal UI formatting for jot output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/jot/internal/models"
)

// PreviewLen is how much content a list item shows before truncating.
const PreviewLen = 150

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// ShortID returns the first six characters of an id.
func ShortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[:6]
}

// Preview truncates content to PreviewLen runes, marking the cut.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLen {
		return content
	}
	return string(runes[:PreviewLen]) + "..."
}

func FormatNoteListItem(note models.Note, selected bool) string {
	var sb strings.Builder

	marker := " "
	if selected {
		marker = green("*")
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s\n", marker, faint(ShortID(note.ID)), bold(note.Title)))

	if note.Content != "" {
		preview := strings.ReplaceAll(Preview(note.Content), "\n", " ")
		sb.WriteString(fmt.Sprintf("         %s\n", preview))
	}

	status := ""
	if note.Status == models.StatusCompleted {
		status = " " + green("done")
	}
	sb.WriteString(fmt.Sprintf("         %s %s%s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Local().Format("2006-01-02 15:04")),
		status))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note models.Note, view models.View) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("In:"), cyan(view.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Status:"), faint(string(note.Status))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Local().Format("2006-01-02 15:04"))))

	sb.WriteString(Separator())
	return sb.String()
}

// FormatViewHeader titles a listing with the view name and optional query.
func FormatViewHeader(view models.View, query string, count int) string {
	line := fmt.Sprintf("\n%s %s", bold(strings.ToUpper(view.String()[:1])+view.String()[1:]), faint(fmt.Sprintf("(%d)", count)))
	if query != "" {
		line += " " + faint("matching") + " " + cyan(query)
	}
	return line + "\n"
}

// FormatCounts renders one line per view with its collection size.
func FormatCounts(counts map[models.View]int) string {
	var sb strings.Builder
	for _, v := range models.Views {
		sb.WriteString(fmt.Sprintf("  %-8s %s\n", cyan(v.String()), faint(fmt.Sprintf("%d", counts[v]))))
	}
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func EmptyState(view models.View) string {
	switch view {
	case models.ViewArchive:
		return faint("No archived notes.")
	case models.ViewTrash:
		return faint("Trash is empty.")
	}
	return faint("No notes found.")
}
