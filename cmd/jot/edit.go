// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Opens note content in $EDITOR or applies --title/--content directly.

package main

import (
	"fmt"

	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long: `Edit a note in the current view (see --view). Without --title or
--content the note's content opens in $EDITOR.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := ctrl.Resolve(ctrl.View(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		title, content := note.Title, note.Content
		if cmd.Flags().Changed("title") {
			title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("content") {
			content, _ = cmd.Flags().GetString("content")
		}
		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
			content, err = openEditor(note.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if title == note.Title && content == note.Content {
			fmt.Println("No changes made.")
			return nil
		}

		ctrl.Update(note.ID, title, content)
		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", ui.ShortID(note.ID))))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("content", "c", "", "new content")
	rootCmd.AddCommand(editCmd)
}
