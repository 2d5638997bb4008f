// ABOUTME: Archive, trash, and restore commands for moving notes between views.
// ABOUTME: Each accepts one or more id prefixes from any view.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
)

// moveNotes resolves each ref across all views and moves it to dest.
// Notes already in dest are reported and skipped.
func moveNotes(refs []string, dest models.View) error {
	var errs []error
	for _, ref := range refs {
		note, from, err := ctrl.ResolveAny(ref)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
			continue
		}
		if _, err := ctrl.MoveNote(note.ID, from, dest); err != nil {
			if errors.Is(err, notes.ErrIllegalTransition) {
				fmt.Println(ui.Warning(fmt.Sprintf("Note %s is already in %s", ui.ShortID(note.ID), dest)))
				continue
			}
			errs = append(errs, err)
			continue
		}
		fmt.Println(ui.Success(fmt.Sprintf("Moved note %s from %s to %s", ui.ShortID(note.ID), from, dest)))
	}
	return errors.Join(errs...)
}

var archiveCmd = &cobra.Command{
	Use:   "archive <id-prefix>...",
	Short: "Archive notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moveNotes(args, models.ViewArchive)
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash <id-prefix>...",
	Short: "Move notes to the trash",
	Long:  `Move notes to the trash. Trashed notes can be restored until they are purged.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moveNotes(args, models.ViewTrash)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id-prefix>...",
	Short: "Restore archived or trashed notes",
	Long:  `Restore notes to the active collection, or to the archive with --to archive.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toFlag, _ := cmd.Flags().GetString("to")
		dest, err := models.ParseView(toFlag)
		if err != nil {
			return err
		}
		if dest == models.ViewTrash {
			return fmt.Errorf("cannot restore to trash; use 'jot trash'")
		}
		return moveNotes(args, dest)
	},
}

func init() {
	restoreCmd.Flags().String("to", string(models.ViewActive), "destination view (active|archive)")
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(restoreCmd)
}
