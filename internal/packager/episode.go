package packager

import (
	"context"

	"github.com/vmunix/torrentforge/internal/media"
	"github.com/vmunix/torrentforge/internal/naming"
	"github.com/vmunix/torrentforge/internal/nfo"
)

func (r EpisodeRequest) namingFields() naming.Fields {
	return naming.Fields{
		"title":         naming.Dotify(r.ShowName),
		"year":          r.Year,
		"quality":       r.Resolution,
		"source":        r.Source,
		"codec":         r.VideoCodec,
		"group":         r.ReleaseGroup,
		"season":        r.Season,
		"episode":       r.Episode,
		"episode_title": naming.Dotify(r.EpisodeTitle),
	}
}

func (r EpisodeRequest) nfoDetails() nfo.EpisodeDetails {
	return nfo.EpisodeDetails{
		ShowName:      r.ShowName,
		Season:        r.Season,
		Episode:       r.Episode,
		EpisodeTitle:  r.EpisodeTitle,
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

// PreviewEpisode computes the names and NFO an episode create would produce.
func (p *Packager) PreviewEpisode(ctx context.Context, req EpisodeRequest) (*Preview, error) {
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
	base := naming.Render(templateOr(cfg.NamingTemplates.Episode, naming.DefaultEpisodeTemplate), req.namingFields())
	if base == "" {
		return nil, ErrEmptyName
	}

	movieReq := req.MovieRequest
	movieReq.Name = req.ShowName
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
		NFOContent: nfo.RenderEpisode(req.nfoDetails(), videoName, p.nfoOptions()),
		Warnings:   p.movieWarnings(folder, videoFile, movieReq),
	}, nil
}

// CreateEpisode runs the full single-episode pipeline.
func (p *Packager) CreateEpisode(ctx context.Context, req EpisodeRequest) (*CreateResult, error) {
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
	base := naming.Render(templateOr(cfg.NamingTemplates.Episode, naming.DefaultEpisodeTemplate), req.namingFields())
	if base == "" {
		return nil, ErrEmptyName
	}
	videoName := base + ext

	return p.createSingle(ctx, folder, base, videoFile, videoName, "episode",
		nfo.RenderEpisode(req.nfoDetails(), videoName, p.nfoOptions()))
}
