// ABOUTME: Config command for inspecting and creating the config file.
// ABOUTME: Runs without opening storage.

package main

import (
	"fmt"

	"github.com/harper/jot/internal/config"
	"github.com/harper/jot/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			path = config.ConfigPath()
		}
		fmt.Printf("# %s\n", path)

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the current settings",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if configFlag == "" && config.ConfigExists() && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.ConfigPath())
		}

		if err := config.SaveConfig(cfg, configFlag); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		path := configFlag
		if path == "" {
			path = config.ConfigPath()
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wrote %s", path)))
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
