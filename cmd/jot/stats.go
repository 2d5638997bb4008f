// ABOUTME: Stats command showing how many notes each view holds.

package main

import (
	"fmt"

	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count notes in each view",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(ui.FormatCounts(ctrl.Counts()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
