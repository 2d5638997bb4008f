// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON and markdown export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type ExportNote struct {
	ID        string        `json:"id" yaml:"id"`
	Title     string        `json:"title" yaml:"title"`
	Content   string        `json:"content" yaml:"-"`
	View      models.View   `json:"view" yaml:"view"`
	Status    models.Status `json:"status" yaml:"status"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"updated"`
}

type ExportData struct {
	ExportedAt time.Time    `json:"exported_at"`
	Version    string       `json:"version"`
	Notes      []ExportNote `json:"notes"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export the notes in the current view, or every view with --all, to JSON or markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")
		all, _ := cmd.Flags().GetBool("all")

		var exported []ExportNote
		switch {
		case notePrefix != "":
			note, view, err := ctrl.ResolveAny(notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			exported = append(exported, toExport(note, view))
		case all:
			for _, view := range models.Views {
				for _, n := range ctrl.VisibleNotes(view, "") {
					exported = append(exported, toExport(n, view))
				}
			}
		default:
			for _, n := range ctrl.VisibleNotes(ctrl.View(), "") {
				exported = append(exported, toExport(n, ctrl.View()))
			}
		}

		switch format {
		case "json":
			return exportJSON(exported, outputPath)
		case "md":
			return exportMarkdown(exported, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func toExport(n models.Note, view models.View) ExportNote {
	return ExportNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		View:      view,
		Status:    n.Status,
		UpdatedAt: n.UpdatedAt,
	}
}

func exportJSON(notes []ExportNote, outputPath string) error {
	export := ExportData{
		ExportedAt: time.Now().UTC(),
		Version:    "1.0",
		Notes:      notes,
	}
	if export.Notes == nil {
		export.Notes = []ExportNote{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputPath, data, 0600)
}

func exportMarkdown(notes []ExportNote, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	for _, n := range notes {
		var sb strings.Builder
		sb.WriteString("---\n")

		frontmatter, err := yaml.Marshal(n)
		if err != nil {
			return err
		}
		sb.Write(frontmatter)
		sb.WriteString("---\n\n")
		sb.WriteString(n.Content)

		// Titles repeat freely, so the short id keeps filenames unique.
		filename := sanitizeFilename(n.Title) + "-" + ui.ShortID(n.ID) + ".md"
		filePath := filepath.Join(outputDir, filename)
		if err := os.WriteFile(filePath, []byte(sb.String()), 0600); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	// Replace unsafe characters
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	exportCmd.Flags().Bool("all", false, "export every view")
	rootCmd.AddCommand(exportCmd)
}
