// Package packager ties naming, NFO rendering, and torrent building into the
// preview and create pipelines. Preview never touches disk; create renames
// the staged media, rewrites the NFO, and emits the .torrent next to the
// staged folder. Both derive names and NFO text from the same pure helpers so
// a preview always matches what create produces.
package packager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/torrentforge/internal/config"
	"github.com/vmunix/torrentforge/internal/media"
	"github.com/vmunix/torrentforge/internal/nfo"
	"github.com/vmunix/torrentforge/internal/project"
	"github.com/vmunix/torrentforge/internal/torrent"
	"github.com/vmunix/torrentforge/pkg/release"
)

const torrentComment = "Created by TorrentForge"

// ErrFolderNotFound is returned when the staged folder doesn't exist.
var ErrFolderNotFound = errors.New("folder not found")

// ErrNoVideoFile is returned when the staged folder has no video file.
var ErrNoVideoFile = errors.New("no video file found in the torrent folder")

// ErrEmptyName is returned when the naming template renders an empty name.
var ErrEmptyName = errors.New("naming template produced an empty name")

// CollisionError reports a rename target that already exists. The API layer
// maps it to 409.
type CollisionError struct {
	Kind string // "file" or "folder"
	Name string
}

func (e *CollisionError) Error() string {
	if e.Kind == "folder" {
		return fmt.Sprintf("a folder named '%s' already exists", e.Name)
	}
	return fmt.Sprintf("a file named '%s' already exists in the folder", e.Name)
}

// Packager runs the preview and create pipelines.
type Packager struct {
	cfg      *config.Store
	projects *project.Store
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Packager.
type Option func(*Packager)

// WithClock overrides the torrent creation-date source.
func WithClock(now func() time.Time) Option {
	return func(p *Packager) { p.now = now }
}

// New creates a Packager. projects may be nil to skip history recording.
func New(cfg *config.Store, projects *project.Store, logger *slog.Logger, opts ...Option) *Packager {
	p := &Packager{
		cfg:      cfg,
		projects: projects,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Packager) nfoOptions() nfo.Options {
	cfg := p.cfg.Config()
	return nfo.Options{
		ASCIIArt:     p.cfg.ASCIIArt(),
		IncludeNotes: cfg.NFO.IncludeNotes,
		Notes:        cfg.NFO.NotesTemplate,
	}
}

// WriteInitialNFO renders the provisional NFO for a freshly staged folder
// and writes it as <baseName>.NFO. Returns the written path. When the parsed
// name carries no group, the configured release group fills the Group line.
func (p *Packager) WriteInitialNFO(targetFolder, baseName string, info *release.Info, filename, mediaType string) (string, error) {
	if info.Group == "" {
		if g := p.cfg.Config().ReleaseGroup; g != "" {
			withGroup := *info
			withGroup.Group = g
			info = &withGroup
		}
	}
	content := nfo.RenderInitial(info, filename, mediaType, p.nfoOptions())
	path := filepath.Join(targetFolder, baseName+".NFO")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write nfo: %w", err)
	}
	return path, nil
}

// parseID converts the UI's string TMDB id to a numeric one. Empty and
// malformed ids render as no link.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func checkFolder(path string) (string, error) {
	path = config.ExpandPath(path)
	stat, err := os.Stat(path)
	if err != nil || !stat.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrFolderNotFound, path)
	}
	return path, nil
}

// removeOldNFOs deletes any .NFO files in folder, case-insensitively.
func removeOldNFOs(folder string) error {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("read folder: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".nfo") {
			if err := os.Remove(filepath.Join(folder, e.Name())); err != nil {
				return fmt.Errorf("remove old nfo: %w", err)
			}
		}
	}
	return nil
}

// renameInto renames old to new inside folder, failing with a CollisionError
// when the target already exists. A no-op when the names match.
func renameInto(folder, oldName, newName, kind string) error {
	if oldName == newName {
		return nil
	}
	newPath := filepath.Join(folder, newName)
	if _, err := os.Stat(newPath); err == nil {
		return &CollisionError{Kind: kind, Name: newName}
	}
	if err := os.Rename(filepath.Join(folder, oldName), newPath); err != nil {
		return fmt.Errorf("rename %s: %w", kind, err)
	}
	return nil
}

// renameFolder renames the staged folder itself to baseName.
func renameFolder(folderPath, baseName string) (string, error) {
	parent := filepath.Dir(folderPath)
	newPath := filepath.Join(parent, baseName)
	if folderPath == newPath {
		return folderPath, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", &CollisionError{Kind: "folder", Name: baseName}
	}
	if err := os.Rename(folderPath, newPath); err != nil {
		return "", fmt.Errorf("rename folder: %w", err)
	}
	return newPath, nil
}

// buildTorrent hashes folder and writes <baseName>.torrent next to it.
func (p *Packager) buildTorrent(ctx context.Context, folder, baseName string, trackers []string) (string, error) {
	b := torrent.NewBuilder(p.logger,
		torrent.WithTrackers(trackers),
		torrent.WithComment(torrentComment),
		torrent.WithCreatedBy("torrentforge"),
		torrent.WithClock(p.now),
	)
	meta, err := b.Build(ctx, folder)
	if err != nil {
		return "", fmt.Errorf("build torrent: %w", err)
	}

	torrentPath := filepath.Join(filepath.Dir(folder), baseName+".torrent")
	if err := meta.WriteFile(torrentPath); err != nil {
		return "", err
	}
	return torrentPath, nil
}

// record stores the finished build in project history. Failures are logged,
// not returned: the artifacts already exist on disk.
func (p *Packager) record(ctx context.Context, mediaType, baseName, folder, torrentPath string, trackers []string) {
	if p.projects == nil {
		return
	}
	var files []string
	if entries, err := os.ReadDir(folder); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, e.Name())
			}
		}
	}
	_, err := p.projects.Add(ctx, project.Project{
		Name:        baseName,
		MediaType:   mediaType,
		FolderPath:  folder,
		TorrentPath: torrentPath,
		NFOPath:     filepath.Join(folder, baseName+".NFO"),
		Trackers:    trackers,
		Files:       files,
	})
	if err != nil {
		p.logger.Warn("failed to record project", "name", baseName, "error", err)
	}
}

// DeleteRecords drops project history for a staged folder that was deleted.
func (p *Packager) DeleteRecords(ctx context.Context, folderPath string) {
	if p.projects == nil {
		return
	}
	if _, err := p.projects.DeleteByFolder(ctx, folderPath); err != nil {
		p.logger.Warn("failed to delete project records", "folder", folderPath, "error", err)
	}
}

// Projects returns the build history, newest first.
func (p *Packager) Projects(ctx context.Context) ([]project.Project, error) {
	if p.projects == nil {
		return []project.Project{}, nil
	}
	return p.projects.List(ctx)
}

// templateOr falls back to a default when the configured template is empty.
func templateOr(tmpl, fallback string) string {
	if strings.TrimSpace(tmpl) == "" {
		return fallback
	}
	return tmpl
}

// resolutionFloor gives the size below which a file looks too small for the
// claimed resolution.
var resolutionFloor = map[string]int64{
	"2160p": 2 << 30,
	"1080p": 500 << 20,
	"720p":  200 << 20,
}

func sizeWarning(resolution string, sizeBytes int64) string {
	floor, ok := resolutionFloor[resolution]
	if !ok || sizeBytes == 0 || sizeBytes >= floor {
		return ""
	}
	return fmt.Sprintf("File is only %s, which is unusually small for %s content.",
		media.FormatSize(sizeBytes), resolution)
}
