package release

import "testing"

func TestParse_Movie(t *testing.T) {
	info := Parse("The.Movie.2020.1080p.BluRay.x264-GROUP.mkv")

	if info.Title != "The Movie" {
		t.Errorf("Title = %q, want %q", info.Title, "The Movie")
	}
	if info.Year != 2020 {
		t.Errorf("Year = %d, want 2020", info.Year)
	}
	if info.Resolution != "1080p" {
		t.Errorf("Resolution = %q, want 1080p", info.Resolution)
	}
	if info.Source != "BluRay" {
		t.Errorf("Source = %q, want BluRay", info.Source)
	}
	if info.VideoCodec != "x264" {
		t.Errorf("VideoCodec = %q, want x264", info.VideoCodec)
	}
	if info.Group != "GROUP" {
		t.Errorf("Group = %q, want GROUP", info.Group)
	}
	if info.Container != "mkv" {
		t.Errorf("Container = %q, want mkv", info.Container)
	}
	if info.Type() != TypeMovie {
		t.Errorf("Type() = %q, want movie", info.Type())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Info
	}{
		{
			name: "episode with title",
			in:   "Some.Show.S02E05.The.Heist.720p.WEB-DL.x265-TEAM.mkv",
			want: Info{
				Title: "Some Show", Season: 2, Episode: 5,
				EpisodeTitle: "The Heist", Resolution: "720p",
				Source: "WEB-DL", VideoCodec: "x265",
				Group: "TEAM", Container: "mkv",
			},
		},
		{
			name: "cross notation episode",
			in:   "Show 1x03 hdtv.avi",
			want: Info{Title: "Show", Season: 1, Episode: 3, Source: "HDTV", Container: "avi"},
		},
		{
			name: "season pack folder",
			in:   "Great.Show.S03.2160p.WEBRip.HEVC",
			want: Info{Title: "Great Show", Season: 3, Resolution: "2160p", Source: "WEBRip", VideoCodec: "x265"},
		},
		{
			name: "hyphenated source not mistaken for group",
			in:   "Old.Film.1999.720p.Blu-ray.x264.mkv",
			want: Info{Title: "Old Film", Year: 1999, Resolution: "720p", Source: "BluRay", VideoCodec: "x264", Container: "mkv"},
		},
		{
			name: "audio codec and language",
			in:   "Film.2021.FRENCH.1080p.BluRay.DTS.x264-GRP.mkv",
			want: Info{
				Title: "Film", Year: 2021, Language: "French",
				Resolution: "1080p", Source: "BluRay", AudioCodec: "DTS",
				VideoCodec: "x264", Group: "GRP", Container: "mkv",
			},
		},
		{
			name: "underscore separators",
			in:   "Another_Movie_2018_720p_WEBRip_x264.mp4",
			want: Info{Title: "Another Movie", Year: 2018, Resolution: "720p", Source: "WEBRip", VideoCodec: "x264", Container: "mp4"},
		},
		{
			name: "nothing recognizable falls back to whole name",
			in:   "home video clip.mkv",
			want: Info{Title: "home video clip", Container: "mkv"},
		},
		{
			name: "numeric title not eaten by year rule",
			in:   "2012.1080p.BluRay.x264.mkv",
			want: Info{Title: "2012", Resolution: "1080p", Source: "BluRay", VideoCodec: "x264", Container: "mkv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if *got != tt.want {
				t.Errorf("Parse(%q)\n got  %+v\n want %+v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestInfo_Type(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want MediaType
	}{
		{"episode", Info{Season: 1, Episode: 2}, TypeEpisode},
		{"season pack", Info{Season: 1}, TypeSeason},
		{"movie", Info{Title: "Movie", Year: 2020}, TypeMovie},
		{"bare title", Info{Title: "whatever"}, TypeMovie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Type(); got != tt.want {
				t.Errorf("Type() = %q, want %q", got, tt.want)
			}
		})
	}
}
