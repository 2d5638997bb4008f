// ABOUTME: Bulk command applying one action to several notes in a view.
// ABOUTME: Selects the given notes and runs the action over the selection.

package main

import (
	"fmt"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk <trash|archive|restore> <id-prefix>...",
	Short: "Apply an action to several notes",
	Long: `Select notes in the current view (see --view) and apply one action to
all of them. What an action does depends on the view:

  trash    active/archive -> trash, trash -> deleted forever
  archive  active/trash -> archive
  restore  archive/trash -> active

Examples:
  jot bulk archive 1a2b3c 4d5e6f
  jot --view trash bulk trash 1a2b3c`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := models.ParseAction(args[0])
		if err != nil {
			return err
		}

		for _, ref := range args[1:] {
			note, err := ctrl.Resolve(ctrl.View(), ref)
			if err != nil {
				return fmt.Errorf("failed to find %s in %s: %w", ref, ctrl.View(), err)
			}
			if !ctrl.IsSelected(note.ID) {
				ctrl.ToggleSelect(note.ID)
			}
		}

		selected := len(ctrl.Selected())
		n := ctrl.ApplyToSelection(action)
		fmt.Println(ui.Success(fmt.Sprintf("Applied %s to %d of %d note(s) in %s", action, n, selected, ctrl.View())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bulkCmd)
}
