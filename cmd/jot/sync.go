// ABOUTME: Sync subcommand for the Charm cloud backend.
// ABOUTME: Provides status, link, now, repair, reset, and wipe commands.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harper/jot/internal/config"
	"github.com/harper/jot/internal/storage"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage Charm cloud sync",
	Long: `Sync your notes to the Charm cloud when the charm backend is in use.

Charm uses SSH key authentication - no passwords needed.
With auto_sync enabled, data syncs after each change.

Commands:
  status  - Show sync configuration and connection status
  link    - Connect this device to Charm cloud
  now     - Sync immediately
  repair  - Repair database corruption issues
  reset   - Reset local sync data (keeps cloud data)
  wipe    - Delete all synced data and start fresh

Examples:
  jot sync status
  jot sync link --host charm.example.com
  jot sync now`,
}

// syncAnnotations keeps sync commands from loading notes before they run.
var syncAnnotations = map[string]string{skipStorage: "true"}

// charmBackend opens the charm backend described by the config.
func charmBackend() (*storage.Charm, error) {
	return storage.NewCharm(
		storage.WithCharmHost(cfg.CharmHost),
		storage.WithAutoSync(cfg.AutoSync),
	)
}

func confirm(prompt, want string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if want == "y" {
		return answer == "y" || answer == "yes"
	}
	return answer == want
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show sync status",
	Annotations: syncAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Charm Sync Status")
		fmt.Println(strings.Repeat("-", 40))

		fmt.Printf("Config:    %s\n", config.ConfigPath())
		fmt.Printf("Backend:   %s\n", cfg.Backend)
		if cfg.CharmHost != "" {
			fmt.Printf("Host:      %s\n", cfg.CharmHost)
		} else {
			fmt.Printf("Host:      %s\n", color.New(color.Faint).Sprint("(default: cloud.charm.sh)"))
		}

		if cfg.AutoSync {
			fmt.Printf("Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Printf("Auto-sync: %s\n", color.YellowString("disabled"))
		}

		if cfg.Backend != storage.KindCharm {
			fmt.Println()
			fmt.Printf("Status:    %s\n", color.YellowString("not using charm backend"))
			fmt.Println("\nSet 'backend: charm' in the config to sync notes.")
			return nil
		}

		c, err := charmBackend()
		if err != nil {
			return err
		}

		user, err := c.User()
		fmt.Println()
		if err != nil || user == nil {
			fmt.Printf("Status:    %s\n", color.YellowString("not linked"))
			fmt.Println("\nRun 'jot sync link' to connect to Charm cloud.")
			return nil
		}

		fmt.Printf("User ID:   %s\n", user.CharmID)
		fmt.Printf("Name:      %s\n", valueOrNone(user.Name))
		if last := c.LastSyncTime(); !last.IsZero() {
			fmt.Printf("Last sync: %s\n", last.Local().Format("2006-01-02 15:04"))
		}
		fmt.Printf("Status:    %s\n", color.GreenString("connected"))
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Connect to Charm cloud",
	Long: `Link this device to Charm cloud and switch the backend to charm.

Charm uses SSH key authentication. Your SSH keys are used
automatically - no passwords needed.`,
	Annotations: syncAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		if host != "" {
			cfg.CharmHost = host
		}
		cfg.Backend = storage.KindCharm

		if err := config.SaveConfig(cfg, configFlag); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		c, err := charmBackend()
		if err != nil {
			return err
		}

		user, err := c.User()
		if err != nil {
			return fmt.Errorf("link failed: %w", err)
		}

		color.Green("\n✓ Linked to Charm cloud")
		fmt.Printf("  User ID: %s\n", user.CharmID)
		if user.Name != "" {
			fmt.Printf("  Name:    %s\n", user.Name)
		}
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:         "now",
	Short:       "Sync immediately",
	Annotations: syncAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmBackend()
		if err != nil {
			return err
		}
		if err := c.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption issues",
	Long: `Repair the local KV database if it's corrupted.

Use --force to attempt repair even if integrity check fails.`,
	Annotations: syncAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing database...")
		result, err := charmkv.Repair(storage.CharmDBName, force)
		if err != nil {
			return fmt.Errorf("repair failed: %w", err)
		}

		fmt.Println("\nRepair Results:")
		if result.WalCheckpointed {
			fmt.Println("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			fmt.Println("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			fmt.Println("  ✓ Database vacuumed")
		}

		if !result.IntegrityOK {
			color.Yellow("\n⚠ Repair completed but integrity issues remain")
			fmt.Println("Consider running 'jot sync reset' or 'jot sync wipe'")
		}
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local sync data",
	Long: `Reset the local KV database while keeping cloud data intact.

Your cloud data is preserved and re-synced on the next command.`,
	Annotations: syncAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will reset local sync data.")
		if !confirm("\nContinue? [y/N]: ", "y") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := charmkv.Reset(storage.CharmDBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local sync data reset")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Wipe all sync data and start fresh",
	Long: `Delete all synced data from Charm cloud and the local KV store.

This deletes BOTH cloud backups and local files.`,
	Annotations: syncAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will DELETE every note in active, archive, and trash,")
		fmt.Println("both in Charm cloud and locally.")
		color.Yellow("This cannot be undone!")
		if !confirm("\nType 'wipe' to confirm: ", "wipe") {
			fmt.Println("Aborted.")
			return nil
		}

		result, err := charmkv.Wipe(storage.CharmDBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		fmt.Println("\nWipe Results:")
		if result.CloudBackupsDeleted > 0 {
			fmt.Printf("  ✓ Deleted %d cloud backups\n", result.CloudBackupsDeleted)
		}
		if result.LocalFilesDeleted > 0 {
			fmt.Printf("  ✓ Deleted %d local files\n", result.LocalFilesDeleted)
		}

		color.Green("\n✓ All sync data wiped")
		return nil
	},
}

func init() {
	syncLinkCmd.Flags().String("host", "", "Charm server host (default: cloud.charm.sh)")
	syncRepairCmd.Flags().Bool("force", false, "Force repair even if integrity check fails")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	rootCmd.AddCommand(syncCmd)
}

// valueOrNone returns "(not set)" if the string is empty.
func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
