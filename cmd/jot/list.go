// ABOUTME: List command for displaying the notes in a view.
// ABOUTME: Supports a case-insensitive search over title and content.

package main

import (
	"fmt"

	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long:    `List the notes in the current view, newest first, optionally filtered by a search query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		ctrl.SetSearchQuery(searchFlag)
		visible := ctrl.Visible()

		fmt.Print(ui.FormatViewHeader(ctrl.View(), ctrl.SearchQuery(), len(visible)))
		if len(visible) == 0 {
			fmt.Println(ui.EmptyState(ctrl.View()))
			return nil
		}

		if limitFlag > 0 && len(visible) > limitFlag {
			visible = visible[:limitFlag]
		}
		for _, note := range visible {
			fmt.Print(ui.FormatNoteListItem(note, ctrl.IsSelected(note.ID)))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search query")
	listCmd.Flags().IntP("limit", "n", 0, "number of results (0 for all)")
	rootCmd.AddCommand(listCmd)
}
