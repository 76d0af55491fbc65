package packager

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/torrentforge/internal/config"
	"github.com/vmunix/torrentforge/internal/project"
	"github.com/vmunix/torrentforge/pkg/release"
)

func movieParsedInfo() *release.Info {
	return &release.Info{Title: "The Movie", Year: 2020, Container: "mkv"}
}

func newTestPackager(t *testing.T) (*Packager, string) {
	t.Helper()

	store, err := config.Open(t.TempDir())
	require.NoError(t, err)

	out := t.TempDir()
	cfg := store.Config()
	cfg.OutputDirectory = out
	cfg.Trackers = []string{"http://tracker.example/announce"}
	require.NoError(t, store.SaveConfig(cfg))

	projects, err := project.Open(filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { projects.Close() })

	clock := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	p := New(store, projects, slog.New(slog.DiscardHandler), WithClock(clock))
	return p, out
}

func stageMovie(t *testing.T, out string) string {
	t.Helper()
	folder := filepath.Join(out, "The.Movie.2020")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "The.Movie.2020.mkv"), make([]byte, 8192), 0o644))
	return folder
}

func movieRequest(folder string) MovieRequest {
	return MovieRequest{
		FolderPath:   folder,
		Name:         "The Movie",
		Year:         "2020",
		Resolution:   "1080p",
		Source:       "BluRay",
		VideoCodec:   "x264",
		ReleaseGroup: "GROUP",
		TMDBID:       "603",
		IMDBID:       "tt0000001",
		Overview:     "A movie about things.",
	}
}

func TestPreviewMovie(t *testing.T) {
	p, out := newTestPackager(t)
	folder := stageMovie(t, out)

	preview, err := p.PreviewMovie(context.Background(), movieRequest(folder))
	require.NoError(t, err)

	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP", preview.BaseName)
	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP.torrent", preview.TorrentName)
	require.Len(t, preview.Files, 2)
	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP.mkv", preview.Files[0].Name)
	assert.Equal(t, "video", preview.Files[0].Type)
	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP.NFO", preview.Files[1].Name)
	assert.Contains(t, preview.NFOContent, "Title       : The Movie")

	// Trackers are configured, so the only advisory is the tiny test file
	// being implausible for 1080p.
	require.Len(t, preview.Warnings, 1)
	assert.Contains(t, preview.Warnings[0], "unusually small")

	// Preview must not touch the staged folder.
	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "The.Movie.2020.mkv", entries[0].Name())
}

func TestCreateMovie_MatchesPreview(t *testing.T) {
	p, out := newTestPackager(t)
	folder := stageMovie(t, out)
	req := movieRequest(folder)
	ctx := context.Background()

	preview, err := p.PreviewMovie(ctx, req)
	require.NoError(t, err)

	result, err := p.CreateMovie(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, preview.BaseName, result.NewBaseName)
	assert.Equal(t, filepath.Join(out, preview.BaseName), result.NewFolderPath)
	assert.Equal(t, preview.Files[0].Name, result.NewFilename)

	// The written NFO is byte-identical to the previewed content.
	written, err := os.ReadFile(filepath.Join(result.NewFolderPath, preview.BaseName+".NFO"))
	require.NoError(t, err)
	assert.Equal(t, preview.NFOContent, string(written))

	// Video renamed, torrent written at the output root.
	assert.FileExists(t, filepath.Join(result.NewFolderPath, result.NewFilename))
	assert.Equal(t, filepath.Join(out, preview.TorrentName), result.TorrentFile)
	assert.FileExists(t, result.TorrentFile)
}

func TestCreateMovie_FolderCollision(t *testing.T) {
	p, out := newTestPackager(t)
	folder := stageMovie(t, out)
	req := movieRequest(folder)

	// Occupy the rename target.
	require.NoError(t, os.Mkdir(filepath.Join(out, "The.Movie.2020.1080p.BluRay.x264-GROUP"), 0o755))

	_, err := p.CreateMovie(context.Background(), req)
	var collision *CollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "folder", collision.Kind)
}

func TestCreateMovie_RecordsProject(t *testing.T) {
	p, out := newTestPackager(t)
	folder := stageMovie(t, out)

	_, err := p.CreateMovie(context.Background(), movieRequest(folder))
	require.NoError(t, err)

	projects, err := p.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP", projects[0].Name)
	assert.Equal(t, "movie", projects[0].MediaType)
	assert.Equal(t, []string{"http://tracker.example/announce"}, projects[0].Trackers)
}

func TestPreviewMovie_NoVideo(t *testing.T) {
	p, out := newTestPackager(t)
	folder := filepath.Join(out, "Empty.Folder")
	require.NoError(t, os.Mkdir(folder, 0o755))

	_, err := p.PreviewMovie(context.Background(), movieRequest(folder))
	assert.True(t, errors.Is(err, ErrNoVideoFile))
}

func TestPreviewMovie_FolderMissing(t *testing.T) {
	p, _ := newTestPackager(t)
	req := movieRequest("/nonexistent/folder")
	_, err := p.PreviewMovie(context.Background(), req)
	assert.True(t, errors.Is(err, ErrFolderNotFound))
}

func TestCreateEpisode(t *testing.T) {
	p, out := newTestPackager(t)
	folder := filepath.Join(out, "show.s02e01")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "show.s02e01.mkv"), make([]byte, 4096), 0o644))

	req := EpisodeRequest{
		MovieRequest: MovieRequest{
			FolderPath:   folder,
			Year:         "2008",
			Resolution:   "1080p",
			Source:       "WEB-DL",
			VideoCodec:   "x265",
			ReleaseGroup: "GRP",
		},
		ShowName:     "Breaking Bad",
		Season:       2,
		Episode:      1,
		EpisodeTitle: "Seven Thirty-Seven",
	}

	result, err := p.CreateEpisode(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Breaking.Bad.S02E01.Seven.Thirty-Seven.1080p.WEB-DL.x265-GRP", result.NewBaseName)
	assert.FileExists(t, filepath.Join(result.NewFolderPath, result.NewFilename))
	assert.FileExists(t, result.TorrentFile)
}

func seasonRequest(folder string) SeasonRequest {
	return SeasonRequest{
		FolderPath:   folder,
		ShowName:     "The Show",
		Season:       1,
		Year:         "2021",
		Resolution:   "1080p",
		Source:       "WEB-DL",
		VideoCodec:   "x264",
		ReleaseGroup: "GRP",
		EpisodeCount: 2,
		TotalSize:    "8.00 KB",
	}
}

func TestCreateSeason_MatchesPreview(t *testing.T) {
	p, out := newTestPackager(t)
	folder := filepath.Join(out, "the.show.s01.1080p")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "the.show.s01e01.mkv"), make([]byte, 4096), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "the.show.s01e02.mkv"), make([]byte, 4096), 0o644))

	req := seasonRequest(folder)
	ctx := context.Background()

	preview, err := p.PreviewSeason(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "The.Show.S01.1080p.WEB-DL.x264-GRP", preview.BaseName)

	result, err := p.CreateSeason(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, preview.BaseName, result.NewBaseName)

	// Episode files standardized.
	assert.FileExists(t, filepath.Join(result.NewFolderPath, "The.Show.S01E01.1080p.WEB-DL.x264-GRP.mkv"))
	assert.FileExists(t, filepath.Join(result.NewFolderPath, "The.Show.S01E02.1080p.WEB-DL.x264-GRP.mkv"))

	// Written NFO matches the preview, including the renamed file listing.
	written, err := os.ReadFile(filepath.Join(result.NewFolderPath, preview.BaseName+".NFO"))
	require.NoError(t, err)
	assert.Equal(t, preview.NFOContent, string(written))
	assert.Contains(t, string(written), "The.Show.S01E01.1080p.WEB-DL.x264-GRP.mkv  (4.00 KB)")

	assert.FileExists(t, result.TorrentFile)
}

func TestCreateSeason_KeepsUnparsableNames(t *testing.T) {
	p, out := newTestPackager(t)
	folder := filepath.Join(out, "odd.pack")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "extras.mkv"), make([]byte, 1024), 0o644))

	result, err := p.CreateSeason(context.Background(), seasonRequest(folder))
	require.NoError(t, err)

	// No episode number to parse, so the file keeps its original name.
	assert.FileExists(t, filepath.Join(result.NewFolderPath, "extras.mkv"))
}

func TestWriteInitialNFO(t *testing.T) {
	p, out := newTestPackager(t)
	folder := stageMovie(t, out)

	info := movieParsedInfo()
	path, err := p.WriteInitialNFO(folder, "The.Movie.2020", info, "The.Movie.2020.mkv", "movie")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(folder, "The.Movie.2020.NFO"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Title       : The Movie")
	assert.Contains(t, string(content), "Type        : Movie")

	// The parsed name has no group, so the configured release group fills in.
	assert.Contains(t, string(content), "Group       : GROUP")
}

func TestWriteInitialNFO_ParsedGroupWins(t *testing.T) {
	p, out := newTestPackager(t)
	folder := stageMovie(t, out)

	info := movieParsedInfo()
	info.Group = "SCENE"
	path, err := p.WriteInitialNFO(folder, "The.Movie.2020", info, "The.Movie.2020.mkv", "movie")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Group       : SCENE")
	assert.NotContains(t, string(content), "Group       : GROUP")
}
