package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/torrentforge/internal/api"
	"github.com/vmunix/torrentforge/internal/config"
	"github.com/vmunix/torrentforge/internal/packager"
	"github.com/vmunix/torrentforge/internal/probe"
	"github.com/vmunix/torrentforge/internal/project"
	"github.com/vmunix/torrentforge/internal/server"
	"github.com/vmunix/torrentforge/internal/tmdb"
	"github.com/vmunix/torrentforge/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP backend",
	Long: `Start the HTTP backend the desktop UI connects to.

The server binds to the host and port from the config file
(default 127.0.0.1:8000) and serves the staging, preview,
create, metadata, and settings endpoints.`,
	RunE: runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config-dir", "", "Config directory (default ~/.torrentforge)")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("config-dir")
	if dir == "" {
		dir = config.DefaultDir()
	}

	store, err := config.Open(dir)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg := store.Config()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	projects, err := project.Open(filepath.Join(dir, "projects.db"))
	if err != nil {
		return fmt.Errorf("open project db: %w", err)
	}
	defer projects.Close()

	ws := workspace.NewManager(store.OutputDir, logger)
	pkg := packager.New(store, projects, logger)
	tmdbClient := tmdb.NewClient(func() string { return store.Config().APIKeys.TMDB })
	prober := probe.New(logger)

	mux := http.NewServeMux()
	api.New(store, ws, pkg, tmdbClient, prober, logger).RegisterRoutes(mux)
	handler := api.AllowAll(api.LogRequests(logger, mux))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting torrentforge",
		"version", version,
		"config_dir", dir,
		"output_dir", store.OutputDir())

	runner := server.NewRunner(server.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}, handler, logger)
	return runner.Run(ctx)
}
