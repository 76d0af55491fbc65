// Package nfo renders release information files. All renderers are pure
// functions of their inputs, so the same details always produce the same
// text regardless of when they run.
package nfo

import (
	"fmt"
	"strings"

	"github.com/vmunix/torrentforge/pkg/release"
)

const separator = "=================================================="
const fileSeparator = "--------------------------------------------------"

// Options carries the presentation settings pulled from config.
type Options struct {
	ASCIIArt     string
	IncludeNotes bool
	Notes        string
}

// MovieDetails is everything a movie NFO can show. Empty fields are omitted.
type MovieDetails struct {
	Name          string
	Year          string
	Resolution    string
	Source        string
	VideoCodec    string
	AudioCodec    string
	AudioChannels string
	BitDepth      string
	HDRFormat     string
	Language      string
	Size          string
	Runtime       string
	ReleaseGroup  string
	IMDBID        string
	TMDBID        int64
	Overview      string
}

// EpisodeDetails extends movie details with show context.
type EpisodeDetails struct {
	ShowName      string
	Season        int
	Episode       int
	EpisodeTitle  string
	Year          string
	Resolution    string
	Source        string
	VideoCodec    string
	AudioCodec    string
	AudioChannels string
	BitDepth      string
	HDRFormat     string
	Language      string
	Size          string
	Runtime       string
	ReleaseGroup  string
	IMDBID        string
	TMDBID        int64
	Overview      string
}

// SeasonDetails describes a season pack.
type SeasonDetails struct {
	ShowName      string
	Season        int
	Year          string
	EpisodeCount  int
	Resolution    string
	Source        string
	VideoCodec    string
	AudioCodec    string
	AudioChannels string
	BitDepth      string
	HDRFormat     string
	Language      string
	TotalSize     string
	ReleaseGroup  string
	IMDBID        string
	TMDBID        int64
	Overview      string
}

// FileEntry is one video file in a season pack listing.
type FileEntry struct {
	Name string
	Size string
}

// builder accumulates labelled NFO lines. Labels are padded to a fixed
// column so values align.
type builder struct {
	lines []string
}

func (b *builder) raw(line string) {
	b.lines = append(b.lines, line)
}

func (b *builder) field(label, value string) {
	b.lines = append(b.lines, fmt.Sprintf("%-12s: %s", label, value))
}

// fieldIf adds a labelled line only when the value is non-empty.
func (b *builder) fieldIf(label, value string) {
	if value != "" {
		b.field(label, value)
	}
}

func (b *builder) header(art string) {
	b.raw(art)
	b.raw("")
}

func (b *builder) plot(overview string) {
	if overview == "" {
		return
	}
	b.raw("")
	b.raw("Plot:")
	b.raw(overview)
}

func (b *builder) footer(opts Options) {
	b.raw("")
	b.raw(separator)
	if opts.IncludeNotes && opts.Notes != "" {
		b.raw("")
		b.raw(opts.Notes)
	}
}

func (b *builder) String() string {
	return strings.Join(b.lines, "\n")
}

// RenderInitial builds the provisional NFO shown right after a filename is
// parsed, before any metadata lookup. mediaType is passed in rather than
// derived: a season pack's first file parses as an episode.
func RenderInitial(info *release.Info, filename, mediaType string, opts Options) string {
	var b builder
	b.header(opts.ASCIIArt)

	b.field("Title", info.Title)
	b.field("Year", yearString(info.Year))
	b.field("Type", capitalize(mediaType))
	b.field("Filename", filename)
	b.fieldIf("Resolution", info.Resolution)
	b.fieldIf("Source", info.Source)
	b.fieldIf("Video Codec", info.VideoCodec)
	b.fieldIf("Audio Codec", info.AudioCodec)
	b.fieldIf("Group", info.Group)

	b.footer(opts)
	return b.String()
}

// RenderMovie builds the final movie NFO.
func RenderMovie(d MovieDetails, filename string, opts Options) string {
	var b builder
	b.header(opts.ASCIIArt)

	b.field("Title", d.Name)
	b.field("Year", d.Year)
	b.field("Type", "Movie")
	b.field("Filename", filename)
	b.fieldIf("Resolution", d.Resolution)
	b.fieldIf("Source", d.Source)
	b.fieldIf("Video Codec", d.VideoCodec)
	b.fieldIf("Audio Codec", d.AudioCodec)
	b.fieldIf("Audio", d.AudioChannels)
	b.fieldIf("Bit Depth", d.BitDepth)
	b.fieldIf("HDR Format", d.HDRFormat)
	b.fieldIf("Language", d.Language)
	b.fieldIf("File Size", d.Size)
	b.fieldIf("Runtime", d.Runtime)
	b.fieldIf("Group", d.ReleaseGroup)
	if d.IMDBID != "" {
		b.field("IMDb", fmt.Sprintf("https://www.imdb.com/title/%s/", d.IMDBID))
	}
	if d.TMDBID > 0 {
		b.field("TMDB", fmt.Sprintf("https://www.themoviedb.org/movie/%d", d.TMDBID))
	}

	b.plot(d.Overview)
	b.footer(opts)
	return b.String()
}

// RenderEpisode builds the final single-episode NFO.
func RenderEpisode(d EpisodeDetails, filename string, opts Options) string {
	var b builder
	b.header(opts.ASCIIArt)

	b.field("Show", d.ShowName)
	b.field("Season", fmt.Sprintf("%d", d.Season))
	b.field("Episode", fmt.Sprintf("%d", d.Episode))
	b.field("Title", d.EpisodeTitle)
	b.field("Year", d.Year)
	b.field("Type", "Episode")
	b.field("Filename", filename)
	b.fieldIf("Resolution", d.Resolution)
	b.fieldIf("Source", d.Source)
	b.fieldIf("Video Codec", d.VideoCodec)
	b.fieldIf("Audio Codec", d.AudioCodec)
	b.fieldIf("Audio", d.AudioChannels)
	b.fieldIf("Bit Depth", d.BitDepth)
	b.fieldIf("HDR Format", d.HDRFormat)
	b.fieldIf("Language", d.Language)
	b.fieldIf("File Size", d.Size)
	b.fieldIf("Runtime", d.Runtime)
	b.fieldIf("Group", d.ReleaseGroup)
	if d.IMDBID != "" {
		b.field("IMDb", fmt.Sprintf("https://www.imdb.com/title/%s/", d.IMDBID))
	}
	if d.TMDBID > 0 {
		b.field("TMDB", fmt.Sprintf("https://www.themoviedb.org/tv/%d", d.TMDBID))
	}

	b.plot(d.Overview)
	b.footer(opts)
	return b.String()
}

// RenderSeason builds the season pack NFO, including the file listing.
func RenderSeason(d SeasonDetails, folderName string, files []FileEntry, opts Options) string {
	var b builder
	b.header(opts.ASCIIArt)

	count := d.EpisodeCount
	if count == 0 {
		count = len(files)
	}

	b.field("Show", d.ShowName)
	b.field("Season", fmt.Sprintf("%d", d.Season))
	b.field("Year", d.Year)
	b.field("Type", "Season Pack")
	b.field("Episodes", fmt.Sprintf("%d", count))
	b.field("Folder", folderName)
	b.fieldIf("Resolution", d.Resolution)
	b.fieldIf("Source", d.Source)
	b.fieldIf("Video Codec", d.VideoCodec)
	b.fieldIf("Audio Codec", d.AudioCodec)
	b.fieldIf("Audio", d.AudioChannels)
	b.fieldIf("Bit Depth", d.BitDepth)
	b.fieldIf("HDR Format", d.HDRFormat)
	b.fieldIf("Language", d.Language)
	b.fieldIf("Total Size", d.TotalSize)
	b.fieldIf("Group", d.ReleaseGroup)
	if d.IMDBID != "" {
		b.field("IMDb", fmt.Sprintf("https://www.imdb.com/title/%s/", d.IMDBID))
	}
	if d.TMDBID > 0 {
		b.field("TMDB", fmt.Sprintf("https://www.themoviedb.org/tv/%d", d.TMDBID))
	}

	b.plot(d.Overview)

	b.raw("")
	b.raw(fileSeparator)
	b.raw("Files:")
	b.raw("")
	for _, f := range files {
		if f.Size != "" {
			b.raw(fmt.Sprintf("  %s  (%s)", f.Name, f.Size))
		} else {
			b.raw("  " + f.Name)
		}
	}

	b.footer(opts)
	return b.String()
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprintf("%d", year)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
