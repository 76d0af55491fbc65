package packager

// MovieRequest carries the confirmed details for a movie build. Enumerable
// fields (resolution, source, codecs) are open strings so the UI can send
// custom values.
type MovieRequest struct {
	FolderPath    string `json:"folder_path"`
	Name          string `json:"name"`
	Year          string `json:"year"`
	Runtime       string `json:"runtime"`
	Size          string `json:"size"`
	Language      string `json:"language"`
	Resolution    string `json:"resolution"`
	Source        string `json:"source"`
	VideoCodec    string `json:"video_codec"`
	AudioCodec    string `json:"audio_codec"`
	Container     string `json:"container"`
	ReleaseGroup  string `json:"release_group"`
	TMDBID        string `json:"tmdb_id"`
	IMDBID        string `json:"imdb_id"`
	Overview      string `json:"overview"`
	BitDepth      string `json:"bit_depth"`
	HDRFormat     string `json:"hdr_format"`
	AudioChannels string `json:"audio_channels"`
}

// EpisodeRequest is a movie request plus show context.
type EpisodeRequest struct {
	MovieRequest
	ShowName     string `json:"show_name"`
	Season       int    `json:"season"`
	Episode      int    `json:"episode"`
	EpisodeTitle string `json:"episode_title"`
}

// SeasonRequest carries the confirmed details for a season pack build.
type SeasonRequest struct {
	FolderPath    string `json:"folder_path"`
	ShowName      string `json:"show_name"`
	Season        int    `json:"season"`
	Year          string `json:"year"`
	Language      string `json:"language"`
	Resolution    string `json:"resolution"`
	Source        string `json:"source"`
	VideoCodec    string `json:"video_codec"`
	AudioCodec    string `json:"audio_codec"`
	Container     string `json:"container"`
	ReleaseGroup  string `json:"release_group"`
	TMDBID        string `json:"tmdb_id"`
	IMDBID        string `json:"imdb_id"`
	Overview      string `json:"overview"`
	BitDepth      string `json:"bit_depth"`
	HDRFormat     string `json:"hdr_format"`
	AudioChannels string `json:"audio_channels"`
	TotalSize     string `json:"total_size"`
	EpisodeCount  int    `json:"episode_count"`
}

// PreviewFile is one entry in a preview's file tree.
type PreviewFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Preview describes what a create call would produce, without touching disk.
type Preview struct {
	Success     bool          `json:"success"`
	BaseName    string        `json:"base_name"`
	TorrentName string        `json:"torrent_name"`
	OutputDir   string        `json:"output_dir"`
	Files       []PreviewFile `json:"files"`
	NFOContent  string        `json:"nfo_content"`
	Warnings    []string      `json:"warnings"`
}

// CreateResult reports a finished build.
type CreateResult struct {
	Success         bool   `json:"success"`
	NewFolderPath   string `json:"new_folder_path"`
	NewFilename     string `json:"new_filename,omitempty"`
	NewBaseName     string `json:"new_base_name"`
	OutputDir       string `json:"output_dir"`
	TorrentFile     string `json:"torrent_file"`
	TorrentFilename string `json:"torrent_filename"`
}
