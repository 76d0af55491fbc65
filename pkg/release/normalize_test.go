package release

import "testing"

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bluray", "BluRay"},
		{"blu-ray", "BluRay"},
		{"BLURAY", "BluRay"},
		{"bd", "BluRay"},
		{"brrip", "BDRip"},
		{"BDRip", "BDRip"},
		{"web-dl", "WEB-DL"},
		{"WEBRip", "WEBRip"},
		{"hdtv", "HDTV"},
		{"MySource", "MySource"}, // custom value passes through
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeSource(tt.in); got != tt.want {
				t.Errorf("NormalizeSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSource_Idempotent(t *testing.T) {
	for _, canon := range sourceTags {
		if got := NormalizeSource(canon); got != canon {
			t.Errorf("NormalizeSource(%q) = %q, not idempotent", canon, got)
		}
	}
}

func TestNormalizeVideoCodec(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"h264", "x264"},
		{"H.264", "x264"},
		{"hevc", "x265"},
		{"x265", "x265"},
		{"AV1", "AV1"},
		{"prores", "prores"}, // unknown passes through
	}

	for _, tt := range tests {
		if got := NormalizeVideoCodec(tt.in); got != tt.want {
			t.Errorf("NormalizeVideoCodec(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and strips article", "The Matrix", "matrix"},
		{"accents removed", "Léon", "leon"},
		{"ampersand", "Fast & Furious", "fast and furious"},
		{"punctuation collapsed", "What If...?", "what if"},
		{"apostrophe dropped", "Don't Look Up", "dont look up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.in); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsVideoExtension(t *testing.T) {
	for _, ext := range []string{"mkv", "MP4", "webm", "m4v"} {
		if !IsVideoExtension(ext) {
			t.Errorf("IsVideoExtension(%q) = false, want true", ext)
		}
	}
	for _, ext := range []string{"nfo", "srt", "txt", "torrent"} {
		if IsVideoExtension(ext) {
			t.Errorf("IsVideoExtension(%q) = true, want false", ext)
		}
	}
}
