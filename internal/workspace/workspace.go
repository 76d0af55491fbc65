// Package workspace manages the staging directory where release folders are
// assembled before torrent creation.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/vmunix/torrentforge/internal/media"
)

// ErrSourceNotFound is returned when the requested source path doesn't exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrNoVideoFiles is returned when a folder contains no video files.
var ErrNoVideoFiles = errors.New("no video files found in the selected folder")

// ExistingInfo describes a folder already occupying a staging slot.
type ExistingInfo struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	Size           string `json:"size"`
	FileCount      int    `json:"file_count"`
	VideoFileCount int    `json:"video_file_count"`
	Created        string `json:"created"`
}

// NewInfo describes the incoming source in a conflict report.
type NewInfo struct {
	Name           string `json:"name"`
	Size           string `json:"size"`
	FileCount      int    `json:"file_count"`
	VideoFileCount int    `json:"video_file_count,omitempty"`
}

// Conflict is the result of a staging collision check.
type Conflict struct {
	Conflict bool          `json:"conflict"`
	Existing *ExistingInfo `json:"existing,omitempty"`
	New      *NewInfo      `json:"new,omitempty"`
}

// StagedFile is the result of staging a single video file.
type StagedFile struct {
	Filename     string
	BaseName     string
	TargetFolder string
	NFOPath      string
}

// StagedFileInfo is one entry in a season pack file listing.
type StagedFileInfo struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// StagedFolder is the result of staging a season folder.
type StagedFolder struct {
	FolderName   string
	TargetFolder string
	FirstFile    string
	Files        []StagedFileInfo
	EpisodeCount int
	TotalSize    string
	NFOPath      string
}

// Entry is one staged folder in a listing.
type Entry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	FileCount int    `json:"file_count"`
}

// Capability reports whether deletions can go to the system trash.
type Capability struct {
	HasTrash bool   `json:"has_trash"`
	Platform string `json:"platform"`
	Message  string `json:"message"`
}

// Manager stages release folders under the configured output directory.
// The directory is read per call so config changes apply immediately.
type Manager struct {
	outputDir func() string
	logger    *slog.Logger
}

// NewManager creates a Manager. outputDir must return an expanded path.
func NewManager(outputDir func() string, logger *slog.Logger) *Manager {
	return &Manager{outputDir: outputDir, logger: logger}
}

// TargetFor returns the staging folder a source basename maps to.
func (m *Manager) TargetFor(baseName string) string {
	return filepath.Join(m.outputDir(), baseName)
}

// CheckFileConflict reports whether staging filePath would collide with an
// existing folder.
func (m *Manager) CheckFileConflict(filePath string) (*Conflict, error) {
	stat, err := os.Stat(filePath)
	if err != nil || stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, filePath)
	}

	filename := filepath.Base(filePath)
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))
	target := m.TargetFor(baseName)

	existing, err := m.describeExisting(baseName, target)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &Conflict{Conflict: false}, nil
	}
	return &Conflict{
		Conflict: true,
		Existing: existing,
		New: &NewInfo{
			Name:      baseName,
			Size:      media.FormatSize(stat.Size()),
			FileCount: 1,
		},
	}, nil
}

// CheckFolderConflict reports whether staging folderPath as a season pack
// would collide with an existing folder.
func (m *Manager) CheckFolderConflict(folderPath string) (*Conflict, error) {
	if stat, err := os.Stat(folderPath); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, folderPath)
	}

	videos, err := media.ListVideos(folderPath)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoVideoFiles
	}

	var totalBytes int64
	for _, v := range videos {
		if stat, err := os.Stat(filepath.Join(folderPath, v)); err == nil {
			totalBytes += stat.Size()
		}
	}

	folderName := filepath.Base(folderPath)
	target := m.TargetFor(folderName)

	existing, err := m.describeExisting(folderName, target)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &Conflict{Conflict: false}, nil
	}
	return &Conflict{
		Conflict: true,
		Existing: existing,
		New: &NewInfo{
			Name:           folderName,
			Size:           media.FormatSize(totalBytes),
			FileCount:      len(videos),
			VideoFileCount: len(videos),
		},
	}, nil
}

// describeExisting returns nil when the target folder doesn't exist.
func (m *Manager) describeExisting(name, target string) (*ExistingInfo, error) {
	stat, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat target: %w", err)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}

	var totalBytes int64
	var fileCount, videoCount int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fileCount++
		if media.IsVideoFile(e.Name()) {
			videoCount++
		}
		if info, err := e.Info(); err == nil {
			totalBytes += info.Size()
		}
	}

	return &ExistingInfo{
		Name:           name,
		Path:           target,
		Size:           media.FormatSize(totalBytes),
		FileCount:      fileCount,
		VideoFileCount: videoCount,
		Created:        stat.ModTime().Format("2006-01-02 15:04"),
	}, nil
}

// StageFile copies a single video file into its staging folder, creating the
// folder if needed. An existing copy of the file is overwritten.
func (m *Manager) StageFile(filePath string) (*StagedFile, error) {
	stat, err := os.Stat(filePath)
	if err != nil || stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, filePath)
	}

	filename := filepath.Base(filePath)
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))
	target := m.TargetFor(baseName)

	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create staging folder: %w", err)
	}

	dst := filepath.Join(target, filename)
	if err := copyFile(filePath, dst); err != nil {
		return nil, err
	}
	m.logger.Info("staged file", "source", filePath, "target", target)

	return &StagedFile{
		Filename:     filename,
		BaseName:     baseName,
		TargetFolder: target,
	}, nil
}

// StageFolder copies every video file from folderPath into a staging folder
// named after the source folder. Non-video files are skipped.
func (m *Manager) StageFolder(folderPath string) (*StagedFolder, error) {
	if stat, err := os.Stat(folderPath); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, folderPath)
	}

	videos, err := media.ListVideos(folderPath)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoVideoFiles
	}

	folderName := filepath.Base(folderPath)
	target := m.TargetFor(folderName)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create staging folder: %w", err)
	}

	var totalBytes int64
	files := make([]StagedFileInfo, 0, len(videos))
	for _, v := range videos {
		src := filepath.Join(folderPath, v)
		stat, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", v, err)
		}
		totalBytes += stat.Size()
		files = append(files, StagedFileInfo{Name: v, Size: media.FormatSize(stat.Size())})

		if err := copyFile(src, filepath.Join(target, v)); err != nil {
			return nil, err
		}
	}
	m.logger.Info("staged season folder",
		"source", folderPath, "target", target, "episodes", len(videos))

	return &StagedFolder{
		FolderName:   folderName,
		TargetFolder: target,
		FirstFile:    videos[0],
		Files:        files,
		EpisodeCount: len(videos),
		TotalSize:    media.FormatSize(totalBytes),
	}, nil
}

// List returns all staged folders sorted by name, case-insensitively.
func (m *Manager) List() ([]Entry, error) {
	dir := m.outputDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		var fileCount int
		if children, err := os.ReadDir(path); err == nil {
			for _, c := range children {
				if !c.IsDir() {
					fileCount++
				}
			}
		}
		out = append(out, Entry{Name: e.Name(), Path: path, FileCount: fileCount})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Contents lists all files in a staged folder plus its video files.
func (m *Manager) Contents(folderPath string) (all []string, videos []string, err error) {
	if stat, statErr := os.Stat(folderPath); statErr != nil || !stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, folderPath)
	}

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read folder: %w", err)
	}
	for _, e := range entries {
		all = append(all, e.Name())
		if !e.IsDir() && media.IsVideoFile(e.Name()) {
			videos = append(videos, e.Name())
		}
	}
	sort.Strings(videos)
	return all, videos, nil
}

// Delete removes a staged folder, preferring the system trash when a trash
// helper is available. Returns "trash" or "permanent".
func (m *Manager) Delete(folderPath string) (string, error) {
	if stat, err := os.Stat(folderPath); err != nil || !stat.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, folderPath)
	}

	if helper := trashHelper(); helper != nil {
		if err := helper(folderPath); err == nil {
			m.logger.Info("moved staged folder to trash", "path", folderPath)
			return "trash", nil
		}
		m.logger.Warn("trash helper failed, deleting permanently", "path", folderPath)
	}

	if err := os.RemoveAll(folderPath); err != nil {
		return "", fmt.Errorf("delete folder: %w", err)
	}
	m.logger.Info("deleted staged folder", "path", folderPath)
	return "permanent", nil
}

// DeleteCapability reports how Delete will behave on this system.
func (m *Manager) DeleteCapability() Capability {
	hasTrash := trashHelper() != nil
	return Capability{
		HasTrash: hasTrash,
		Platform: runtime.GOOS,
		Message:  deleteMessage(hasTrash),
	}
}

func deleteMessage(hasTrash bool) string {
	if hasTrash {
		if runtime.GOOS == "windows" {
			return "This torrent will be moved to the Recycle Bin."
		}
		return "This torrent will be moved to the Trash."
	}
	return "WARNING: This torrent will be PERMANENTLY deleted. This action cannot be undone."
}

// trashHelper finds a command that can move a path to the system trash.
// Returns nil when none is available.
func trashHelper() func(path string) error {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("trash"); err == nil {
			return func(path string) error {
				return exec.Command("trash", path).Run()
			}
		}
	case "linux":
		if _, err := exec.LookPath("gio"); err == nil {
			return func(path string) error {
				return exec.Command("gio", "trash", path).Run()
			}
		}
	}
	return nil
}

// copyFile copies src to dst, replacing dst if it exists. The source
// modification time is preserved so staged folders look like the original.
func copyFile(src, dst string) error {
	if same, err := samePath(src, dst); err != nil {
		return err
	} else if same {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing copy: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	mtime := stat.ModTime()
	_ = os.Chtimes(dst, time.Now(), mtime)
	return nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
