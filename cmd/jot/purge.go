// ABOUTME: Purge command for deleting trashed notes forever.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge [id-prefix]...",
	Short: "Delete trashed notes forever",
	Long: `Permanently delete notes from the trash. With --all the whole trash is
emptied. Notes outside the trash cannot be purged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		all, _ := cmd.Flags().GetBool("all")

		var targets []models.Note
		switch {
		case all:
			targets = ctrl.VisibleNotes(models.ViewTrash, "")
		case len(args) == 0:
			return fmt.Errorf("give note ids or --all")
		default:
			for _, ref := range args {
				note, err := ctrl.Resolve(models.ViewTrash, ref)
				if err != nil {
					return fmt.Errorf("failed to find %s in trash: %w", ref, err)
				}
				targets = append(targets, note)
			}
		}

		if len(targets) == 0 {
			fmt.Println(ui.EmptyState(models.ViewTrash))
			return nil
		}

		if !force {
			if len(targets) == 1 {
				fmt.Printf("Delete note %q (%s) forever? [y/N] ", targets[0].Title, ui.ShortID(targets[0].ID))
			} else {
				fmt.Printf("Delete %d notes forever? [y/N] ", len(targets))
			}
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		deleted := 0
		for _, note := range targets {
			if ctrl.DeleteForever(note.ID) {
				deleted++
			}
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted %d note(s) forever", deleted)))
		return nil
	},
}

func init() {
	purgeCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	purgeCmd.Flags().Bool("all", false, "empty the whole trash")
	rootCmd.AddCommand(purgeCmd)
}
