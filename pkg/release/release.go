// Package release parses media release names into structured metadata.
package release

// MediaType classifies a parsed release.
type MediaType string

const (
	TypeMovie   MediaType = "movie"
	TypeEpisode MediaType = "episode"
	TypeSeason  MediaType = "season"
	TypeUnknown MediaType = "unknown"
)

// Info holds the fields recognized in a release file or folder name.
// All fields are optional; anything not detected is left at its zero value.
// String fields carry canonical forms (see normalize.go) but remain open
// strings so user-supplied custom values round-trip untouched.
type Info struct {
	Title        string `json:"title,omitempty"`
	Year         int    `json:"year,omitempty"`
	Season       int    `json:"season,omitempty"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	Source       string `json:"source,omitempty"`
	VideoCodec   string `json:"video_codec,omitempty"`
	AudioCodec   string `json:"audio_codec,omitempty"`
	Language     string `json:"language,omitempty"`
	Container    string `json:"container,omitempty"`
	Group        string `json:"release_group,omitempty"`
}

// Type infers the media type from season/episode markers. A season marker
// without an episode marker means a season pack; anything without either is
// treated as a movie (an unparsed file is still stageable).
func (i *Info) Type() MediaType {
	switch {
	case i.Episode > 0:
		return TypeEpisode
	case i.Season > 0:
		return TypeSeason
	default:
		return TypeMovie
	}
}

// videoExtensions are the container formats recognized as video files.
var videoExtensions = map[string]bool{
	"mp4": true, "mkv": true, "avi": true, "mov": true,
	"wmv": true, "flv": true, "webm": true, "m4v": true,
}

// IsVideoExtension reports whether ext (without the leading dot,
// case-insensitive) is a recognized video container.
func IsVideoExtension(ext string) bool {
	return videoExtensions[lower(ext)]
}
