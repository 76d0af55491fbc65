// Package media provides helpers for locating video files and formatting sizes.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmunix/torrentforge/pkg/release"
)

// IsVideoFile reports whether path has a recognized video extension.
func IsVideoFile(path string) bool {
	ext := filepath.Ext(path)
	return ext != "" && release.IsVideoExtension(ext[1:])
}

// ListVideos returns the video file names directly inside dir, sorted.
// Non-video files (NFO, subtitles, artwork) are excluded.
func ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var videos []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsVideoFile(e.Name()) {
			videos = append(videos, e.Name())
		}
	}
	sort.Strings(videos)
	return videos, nil
}

// FirstVideo returns the first video file in dir and its extension
// (with leading dot), or empty strings if none exists.
func FirstVideo(dir string) (name, ext string, err error) {
	videos, err := ListVideos(dir)
	if err != nil {
		return "", "", err
	}
	if len(videos) == 0 {
		return "", "", nil
	}
	return videos[0], filepath.Ext(videos[0]), nil
}

// FormatSize renders a byte count the way the release tooling expects:
// two decimals, 1024-based units, plain GB/MB/KB suffixes.
func FormatSize(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
