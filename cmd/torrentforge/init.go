package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vmunix/torrentforge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config files",
	Long: `Write the default config files to the config directory.

Creates config.json and the default NFO banner if they do not exist.
Existing files are left untouched; edit them directly or through the
UI settings page.`,
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config-dir", "", "Config directory (default ~/.torrentforge)")
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("config-dir")
	if dir == "" {
		dir = config.DefaultDir()
	}

	store, err := config.Open(dir)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	cfg := store.Config()
	fmt.Printf("Config:     %s\n", filepath.Join(dir, "config.json"))
	fmt.Printf("Output dir: %s\n", cfg.OutputDirectory)
	fmt.Printf("Server:     %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	if cfg.APIKeys.TMDB == "" {
		fmt.Println()
		fmt.Println("No TMDB API key set. Metadata lookups will fail until one is")
		fmt.Println("added under api_keys.tmdb or through the UI settings page.")
	}
	return nil
}
