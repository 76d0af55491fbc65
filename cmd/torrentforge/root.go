package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "torrentforge",
	Short: "Local backend for building torrent release packages",
	Long: `torrentforge - local backend for building torrent release packages

Parses media filenames, probes streams with ffprobe, pulls metadata
from TMDB, stages release folders, renders NFO files, and builds
.torrent files. Run 'torrentforge serve' to start the HTTP backend
the desktop UI talks to.`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("torrentforge {{.Version}}\n")
}
