package packager

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vmunix/torrentforge/internal/media"
	"github.com/vmunix/torrentforge/internal/naming"
	"github.com/vmunix/torrentforge/internal/nfo"
)

func (r MovieRequest) namingFields() naming.Fields {
	return naming.Fields{
		"title":   naming.Dotify(r.Name),
		"year":    r.Year,
		"quality": r.Resolution,
		"source":  r.Source,
		"codec":   r.VideoCodec,
		"group":   r.ReleaseGroup,
	}
}

func (r MovieRequest) nfoDetails() nfo.MovieDetails {
	return nfo.MovieDetails{
		Name:          r.Name,
		Year:          r.Year,
		Resolution:    r.Resolution,
		Source:        r.Source,
		VideoCodec:    r.VideoCodec,
		AudioCodec:    r.AudioCodec,
		AudioChannels: r.AudioChannels,
		BitDepth:      r.BitDepth,
		HDRFormat:     r.HDRFormat,
		Language:      r.Language,
		Size:          r.Size,
		Runtime:       r.Runtime,
		ReleaseGroup:  r.ReleaseGroup,
		IMDBID:        r.IMDBID,
		TMDBID:        parseID(r.TMDBID),
		Overview:      r.Overview,
	}
}

// movieWarnings collects the advisory notes for a movie or episode preview.
func (p *Packager) movieWarnings(folder, videoFile string, req MovieRequest) []string {
	warnings := []string{}
	if len(p.cfg.Config().Trackers) == 0 {
		warnings = append(warnings, "No trackers configured. The torrent will be created without any announce URLs.")
	}
	if req.Name == "" {
		warnings = append(warnings, "No title set. The release name will be incomplete.")
	}
	if req.Year == "" {
		warnings = append(warnings, "No year set. The release name will be incomplete.")
	}
	if stat, err := os.Stat(filepath.Join(folder, videoFile)); err == nil {
		if w := sizeWarning(req.Resolution, stat.Size()); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// PreviewMovie computes the names and NFO a movie create would produce.
func (p *Packager) PreviewMovie(ctx context.Context, req MovieRequest) (*Preview, error) {
	folder, err := checkFolder(req.FolderPath)
	if err != nil {
		return nil, err
	}
	videoFile, ext, err := media.FirstVideo(folder)
	if err != nil {
		return nil, err
	}
	if videoFile == "" {
		return nil, ErrNoVideoFile
	}

	cfg := p.cfg.Config()
	base := naming.Render(templateOr(cfg.NamingTemplates.Movie, naming.DefaultMovieTemplate), req.namingFields())
	if base == "" {
		return nil, ErrEmptyName
	}

	videoName := base + ext
	return &Preview{
		Success:     true,
		BaseName:    base,
		TorrentName: base + ".torrent",
		OutputDir:   cfg.OutputDirectory,
		Files: []PreviewFile{
			{Name: videoName, Type: "video"},
			{Name: base + ".NFO", Type: "nfo"},
		},
		NFOContent: nfo.RenderMovie(req.nfoDetails(), videoName, p.nfoOptions()),
		Warnings:   p.movieWarnings(folder, videoFile, req),
	}, nil
}

// CreateMovie runs the full movie pipeline: rename the video, rewrite the
// NFO, rename the folder, build the .torrent, record the project.
func (p *Packager) CreateMovie(ctx context.Context, req MovieRequest) (*CreateResult, error) {
	folder, err := checkFolder(req.FolderPath)
	if err != nil {
		return nil, err
	}
	videoFile, ext, err := media.FirstVideo(folder)
	if err != nil {
		return nil, err
	}
	if videoFile == "" {
		return nil, ErrNoVideoFile
	}

	cfg := p.cfg.Config()
	base := naming.Render(templateOr(cfg.NamingTemplates.Movie, naming.DefaultMovieTemplate), req.namingFields())
	if base == "" {
		return nil, ErrEmptyName
	}
	videoName := base + ext

	return p.createSingle(ctx, folder, base, videoFile, videoName, "movie",
		nfo.RenderMovie(req.nfoDetails(), videoName, p.nfoOptions()))
}

// createSingle is the shared movie/episode create pipeline.
func (p *Packager) createSingle(ctx context.Context, folder, base, videoFile, videoName, mediaType, nfoContent string) (*CreateResult, error) {
	if err := renameInto(folder, videoFile, videoName, "file"); err != nil {
		return nil, err
	}
	if err := removeOldNFOs(folder); err != nil {
		return nil, err
	}
	nfoPath := filepath.Join(folder, base+".NFO")
	if err := os.WriteFile(nfoPath, []byte(nfoContent), 0o644); err != nil {
		return nil, err
	}

	newFolder, err := renameFolder(folder, base)
	if err != nil {
		return nil, err
	}

	cfg := p.cfg.Config()
	torrentPath, err := p.buildTorrent(ctx, newFolder, base, cfg.Trackers)
	if err != nil {
		return nil, err
	}

	p.record(ctx, mediaType, base, newFolder, torrentPath, cfg.Trackers)
	p.logger.Info("created torrent",
		"type", mediaType, "base_name", base, "torrent", torrentPath)

	return &CreateResult{
		Success:         true,
		NewFolderPath:   newFolder,
		NewFilename:     videoName,
		NewBaseName:     base,
		OutputDir:       cfg.OutputDirectory,
		TorrentFile:     torrentPath,
		TorrentFilename: base + ".torrent",
	}, nil
}
