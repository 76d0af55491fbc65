package naming

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		fields   Fields
		want     string
	}{
		{
			name:     "movie template",
			template: DefaultMovieTemplate,
			fields: Fields{
				"title": "The.Movie", "year": "2020", "quality": "1080p",
				"source": "BluRay", "codec": "x264", "group": "GROUP",
			},
			want: "The.Movie.2020.1080p.BluRay.x264-GROUP",
		},
		{
			name:     "padded before bare for the same field",
			template: "{season:02}-{season}",
			fields:   Fields{"season": 5},
			want:     "05-5",
		},
		{
			name:     "episode template with padding",
			template: DefaultEpisodeTemplate,
			fields: Fields{
				"title": "Show", "season": 1, "episode": 5,
				"episode_title": "Pilot", "quality": "720p",
				"source": "WEB-DL", "codec": "x265", "group": "TEAM",
			},
			want: "Show.S01E05.Pilot.720p.WEB-DL.x265-TEAM",
		},
		{
			name:     "unknown placeholder left verbatim",
			template: "{title}.{mystery}",
			fields:   Fields{"title": "Movie"},
			want:     "Movie.{mystery}",
		},
		{
			name:     "empty fields collapse separators",
			template: DefaultMovieTemplate,
			fields: Fields{
				"title": "Movie", "year": "", "quality": "1080p",
				"source": "", "codec": "x264", "group": "GRP",
			},
			want: "Movie.1080p.x264-GRP",
		},
		{
			name:     "empty group trims trailing hyphen",
			template: DefaultMovieTemplate,
			fields: Fields{
				"title": "Movie", "year": "2020", "quality": "",
				"source": "", "codec": "", "group": "",
			},
			want: "Movie.2020",
		},
		{
			name:     "wider padding",
			template: "E{episode:03}",
			fields:   Fields{"episode": 7},
			want:     "E007",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.fields); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	fields := Fields{"title": "X", "year": "2021", "quality": "1080p", "source": "BluRay", "codec": "x264", "group": "G"}
	a := Render(DefaultMovieTemplate, fields)
	b := Render(DefaultMovieTemplate, fields)
	if a != b {
		t.Errorf("Render not deterministic: %q vs %q", a, b)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What If...?", "What If"},
		{"a/b\\c", "a b c"},
		{"name:  with   spaces  ", "name with spaces"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDotify(t *testing.T) {
	if got := Dotify("The Movie"); got != "The.Movie" {
		t.Errorf("Dotify = %q, want The.Movie", got)
	}
	if got := Dotify("What If?"); got != "What.If" {
		t.Errorf("Dotify = %q, want What.If", got)
	}
}
