// Package config manages persistent user settings for the backend.
//
// Settings live as JSON under the config directory (~/.torrentforge by
// default) so the UI can round-trip the whole document through GET/POST
// /config without translation. The ASCII art banner is stored in a sibling
// text file and saved independently, matching the UI's two-step save flow.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/torrentforge/internal/naming"
)

// Config is the persisted settings document.
type Config struct {
	APIKeys         APIKeys         `json:"api_keys"`
	NamingTemplates NamingTemplates `json:"naming_templates"`
	Trackers        []string        `json:"trackers"`
	OutputDirectory string          `json:"output_directory"`
	ReleaseGroup    string          `json:"release_group"`
	NFO             NFOConfig       `json:"nfo"`
	Server          ServerConfig    `json:"server"`
}

// APIKeys holds metadata provider credentials.
type APIKeys struct {
	TMDB string `json:"tmdb"`
	TVDB string `json:"tvdb"`
}

// NamingTemplates holds the per-media-type release name templates.
type NamingTemplates struct {
	Movie   string `json:"movie"`
	Episode string `json:"episode"`
	Season  string `json:"season"`
}

// NFOConfig controls the trailing notes block of generated NFO files.
type NFOConfig struct {
	IncludeNotes  bool   `json:"include_notes"`
	NotesTemplate string `json:"notes_template"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

// Default returns the built-in configuration used when nothing is persisted.
func Default() Config {
	return Config{
		NamingTemplates: NamingTemplates{
			Movie:   naming.DefaultMovieTemplate,
			Episode: naming.DefaultEpisodeTemplate,
			Season:  naming.DefaultSeasonTemplate,
		},
		Trackers:        []string{},
		OutputDirectory: "~/Documents/torrents",
		ReleaseGroup:    "GROUP",
		NFO: NFOConfig{
			IncludeNotes:  true,
			NotesTemplate: "Enjoy and seed!",
		},
		Server: ServerConfig{
			Host:     "127.0.0.1",
			Port:     8000,
			LogLevel: "info",
		},
	}
}

// applyDefaults fills zero-valued fields after load so older config
// documents missing newer sections keep working.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.NamingTemplates.Movie == "" {
		c.NamingTemplates.Movie = def.NamingTemplates.Movie
	}
	if c.NamingTemplates.Episode == "" {
		c.NamingTemplates.Episode = def.NamingTemplates.Episode
	}
	if c.NamingTemplates.Season == "" {
		c.NamingTemplates.Season = def.NamingTemplates.Season
	}
	if c.OutputDirectory == "" {
		c.OutputDirectory = def.OutputDirectory
	}
	if c.Trackers == nil {
		c.Trackers = []string{}
	}
}

// DefaultDir returns the default config directory.
func DefaultDir() string {
	return ExpandPath("~/.torrentforge")
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
