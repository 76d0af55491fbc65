package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/torrentforge/internal/media"
	"github.com/vmunix/torrentforge/internal/naming"
	"github.com/vmunix/torrentforge/internal/nfo"
	"github.com/vmunix/torrentforge/pkg/release"
)

func (r SeasonRequest) namingFields() naming.Fields {
	return naming.Fields{
		"title":   naming.Dotify(r.ShowName),
		"year":    r.Year,
		"quality": r.Resolution,
		"source":  r.Source,
		"codec":   r.VideoCodec,
		"group":   r.ReleaseGroup,
		"season":  r.Season,
	}
}

func (r SeasonRequest) nfoDetails() nfo.SeasonDetails {
	return nfo.SeasonDetails{
		ShowName:      r.ShowName,
		Season:        r.Season,
		Year:          r.Year,
		EpisodeCount:  r.EpisodeCount,
		Resolution:    r.Resolution,
		Source:        r.Source,
		VideoCodec:    r.VideoCodec,
		AudioCodec:    r.AudioCodec,
		AudioChannels: r.AudioChannels,
		BitDepth:      r.BitDepth,
		HDRFormat:     r.HDRFormat,
		Language:      r.Language,
		TotalSize:     r.TotalSize,
		ReleaseGroup:  r.ReleaseGroup,
		IMDBID:        r.IMDBID,
		TMDBID:        parseID(r.TMDBID),
		Overview:      r.Overview,
	}
}

// episodeFileName builds the standardized per-episode filename for a season
// pack. Episodes whose number can't be parsed keep their original names.
func (r SeasonRequest) episodeFileName(originalName string) string {
	info := release.Parse(originalName)
	if info.Episode == 0 {
		return originalName
	}

	name := fmt.Sprintf("%s.S%02dE%02d", naming.Dotify(r.ShowName), r.Season, info.Episode)
	if r.Resolution != "" {
		name += "." + r.Resolution
	}
	if r.Source != "" {
		name += "." + r.Source
	}
	if r.VideoCodec != "" {
		name += "." + r.VideoCodec
	}
	if r.ReleaseGroup != "" {
		name += "-" + r.ReleaseGroup
	}
	return name + filepath.Ext(originalName)
}

func (p *Packager) seasonWarnings(req SeasonRequest) []string {
	warnings := []string{}
	if len(p.cfg.Config().Trackers) == 0 {
		warnings = append(warnings, "No trackers configured. The torrent will be created without any announce URLs.")
	}
	if req.ShowName == "" {
		warnings = append(warnings, "No show name set. The release name will be incomplete.")
	}
	if req.EpisodeCount == 0 {
		warnings = append(warnings, "No episodes counted. Check that the folder contains the full season.")
	}
	return warnings
}

// PreviewSeason computes the names and NFO a season pack create would
// produce, including the per-episode renames.
func (p *Packager) PreviewSeason(ctx context.Context, req SeasonRequest) (*Preview, error) {
	folder, err := checkFolder(req.FolderPath)
	if err != nil {
		return nil, err
	}
	videos, err := media.ListVideos(folder)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoVideoFile
	}

	cfg := p.cfg.Config()
	base := naming.Render(templateOr(cfg.NamingTemplates.Season, naming.DefaultSeasonTemplate), req.namingFields())
	if base == "" {
		return nil, ErrEmptyName
	}

	files := make([]PreviewFile, 0, len(videos)+1)
	listing := make([]nfo.FileEntry, 0, len(videos))
	for _, v := range videos {
		renamed := req.episodeFileName(v)
		files = append(files, PreviewFile{Name: renamed, Type: "video"})

		var size string
		if stat, err := os.Stat(filepath.Join(folder, v)); err == nil {
			size = media.FormatSize(stat.Size())
		}
		listing = append(listing, nfo.FileEntry{Name: renamed, Size: size})
	}
	files = append(files, PreviewFile{Name: base + ".NFO", Type: "nfo"})

	return &Preview{
		Success:     true,
		BaseName:    base,
		TorrentName: base + ".torrent",
		OutputDir:   cfg.OutputDirectory,
		Files:       files,
		NFOContent:  nfo.RenderSeason(req.nfoDetails(), base, listing, p.nfoOptions()),
		Warnings:    p.seasonWarnings(req),
	}, nil
}

// CreateSeason runs the full season pack pipeline: standardize every episode
// filename, rewrite the NFO with the renamed listing, rename the folder,
// build the .torrent, record the project.
func (p *Packager) CreateSeason(ctx context.Context, req SeasonRequest) (*CreateResult, error) {
	folder, err := checkFolder(req.FolderPath)
	if err != nil {
		return nil, err
	}
	videos, err := media.ListVideos(folder)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoVideoFile
	}

	cfg := p.cfg.Config()
	base := naming.Render(templateOr(cfg.NamingTemplates.Season, naming.DefaultSeasonTemplate), req.namingFields())
	if base == "" {
		return nil, ErrEmptyName
	}

	renamed := make([]string, 0, len(videos))
	for _, v := range videos {
		newName := req.episodeFileName(v)
		if err := renameInto(folder, v, newName, "file"); err != nil {
			return nil, err
		}
		renamed = append(renamed, newName)
	}

	if err := removeOldNFOs(folder); err != nil {
		return nil, err
	}

	// Listing sizes come from the renamed files on disk, so the written NFO
	// matches what the preview computed from the originals.
	listing := make([]nfo.FileEntry, 0, len(renamed))
	for _, v := range renamed {
		var size string
		if stat, err := os.Stat(filepath.Join(folder, v)); err == nil {
			size = media.FormatSize(stat.Size())
		}
		listing = append(listing, nfo.FileEntry{Name: v, Size: size})
	}

	nfoContent := nfo.RenderSeason(req.nfoDetails(), base, listing, p.nfoOptions())
	nfoPath := filepath.Join(folder, base+".NFO")
	if err := os.WriteFile(nfoPath, []byte(nfoContent), 0o644); err != nil {
		return nil, err
	}

	newFolder, err := renameFolder(folder, base)
	if err != nil {
		return nil, err
	}

	torrentPath, err := p.buildTorrent(ctx, newFolder, base, cfg.Trackers)
	if err != nil {
		return nil, err
	}

	p.record(ctx, "season", base, newFolder, torrentPath, cfg.Trackers)
	p.logger.Info("created season pack torrent",
		"base_name", base, "episodes", len(renamed), "torrent", torrentPath)

	return &CreateResult{
		Success:         true,
		NewFolderPath:   newFolder,
		NewBaseName:     base,
		OutputDir:       cfg.OutputDirectory,
		TorrentFile:     torrentPath,
		TorrentFilename: base + ".torrent",
	}, nil
}
