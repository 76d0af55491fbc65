package nfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/torrentforge/pkg/release"
)

var testOpts = Options{
	ASCIIArt:     "== ART ==",
	IncludeNotes: true,
	Notes:        "Enjoy and seed!",
}

func TestRenderMovie(t *testing.T) {
	d := MovieDetails{
		Name:          "The Matrix",
		Year:          "1999",
		Resolution:    "1080p",
		Source:        "BluRay",
		VideoCodec:    "x264",
		AudioCodec:    "DTS",
		AudioChannels: "5.1",
		BitDepth:      "8-bit",
		Language:      "English",
		Size:          "8.54 GB",
		Runtime:       "136 min",
		ReleaseGroup:  "GROUP",
		IMDBID:        "tt0133093",
		TMDBID:        603,
		Overview:      "A computer hacker learns the truth.",
	}

	out := RenderMovie(d, "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv", testOpts)

	assert.True(t, strings.HasPrefix(out, "== ART ==\n"))
	assert.Contains(t, out, "Title       : The Matrix")
	assert.Contains(t, out, "Year        : 1999")
	assert.Contains(t, out, "Type        : Movie")
	assert.Contains(t, out, "Audio       : 5.1")
	assert.Contains(t, out, "IMDb        : https://www.imdb.com/title/tt0133093/")
	assert.Contains(t, out, "TMDB        : https://www.themoviedb.org/movie/603")
	assert.Contains(t, out, "Plot:\nA computer hacker learns the truth.")
	assert.Contains(t, out, separator)
	assert.True(t, strings.HasSuffix(out, "Enjoy and seed!"))
}

func TestRenderMovie_OmitsEmptyFields(t *testing.T) {
	d := MovieDetails{Name: "Minimal", Year: "2020"}
	out := RenderMovie(d, "minimal.mkv", testOpts)

	assert.NotContains(t, out, "Resolution")
	assert.NotContains(t, out, "HDR Format")
	assert.NotContains(t, out, "IMDb")
	assert.NotContains(t, out, "Plot:")
}

func TestRenderMovie_Deterministic(t *testing.T) {
	d := MovieDetails{Name: "Stable", Year: "2021", Resolution: "2160p"}
	first := RenderMovie(d, "stable.mkv", testOpts)
	for range 5 {
		assert.Equal(t, first, RenderMovie(d, "stable.mkv", testOpts))
	}
}

func TestRenderEpisode(t *testing.T) {
	d := EpisodeDetails{
		ShowName:     "Breaking Bad",
		Season:       2,
		Episode:      1,
		EpisodeTitle: "Seven Thirty-Seven",
		Year:         "2008",
		Resolution:   "1080p",
		TMDBID:       100,
	}

	out := RenderEpisode(d, "bb.s02e01.mkv", testOpts)

	assert.Contains(t, out, "Show        : Breaking Bad")
	assert.Contains(t, out, "Season      : 2")
	assert.Contains(t, out, "Episode     : 1")
	assert.Contains(t, out, "Title       : Seven Thirty-Seven")
	assert.Contains(t, out, "Type        : Episode")
	assert.Contains(t, out, "TMDB        : https://www.themoviedb.org/tv/100")
}

func TestRenderSeason(t *testing.T) {
	d := SeasonDetails{
		ShowName:  "Breaking Bad",
		Season:    2,
		Year:      "2008",
		TotalSize: "28.12 GB",
	}
	files := []FileEntry{
		{Name: "ep01.mkv", Size: "2.20 GB"},
		{Name: "ep02.mkv"},
	}

	out := RenderSeason(d, "Breaking.Bad.S02.1080p", files, testOpts)

	assert.Contains(t, out, "Type        : Season Pack")
	assert.Contains(t, out, "Episodes    : 2")
	assert.Contains(t, out, "Folder      : Breaking.Bad.S02.1080p")
	assert.Contains(t, out, "Total Size  : 28.12 GB")
	assert.Contains(t, out, fileSeparator+"\nFiles:\n\n  ep01.mkv  (2.20 GB)\n  ep02.mkv")
}

func TestRenderSeason_ExplicitEpisodeCount(t *testing.T) {
	d := SeasonDetails{ShowName: "Show", Season: 1, EpisodeCount: 13}
	out := RenderSeason(d, "Show.S01", []FileEntry{{Name: "one.mkv"}}, testOpts)
	assert.Contains(t, out, "Episodes    : 13")
}

func TestRenderInitial(t *testing.T) {
	info := &release.Info{
		Title:      "The Movie",
		Year:       2020,
		Resolution: "1080p",
		Source:     "BluRay",
		VideoCodec: "x264",
		Group:      "GROUP",
	}

	out := RenderInitial(info, "The.Movie.2020.1080p.BluRay.x264-GROUP.mkv", "movie", testOpts)

	assert.Contains(t, out, "Title       : The Movie")
	assert.Contains(t, out, "Type        : Movie")
	assert.Contains(t, out, "Group       : GROUP")
}

func TestRenderInitial_NoNotes(t *testing.T) {
	opts := Options{ASCIIArt: "art", IncludeNotes: false, Notes: "Enjoy and seed!"}
	out := RenderInitial(&release.Info{Title: "X"}, "x.mkv", "movie", opts)
	assert.NotContains(t, out, "Enjoy and seed!")
	assert.True(t, strings.HasSuffix(out, separator))
}
