// Package tmdb provides a client for The Movie Database API.
package tmdb

// MovieResult is one movie search hit, trimmed to what the UI renders.
type MovieResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Year          string  `json:"year"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	VoteAverage   float64 `json:"vote_average"`
}

// TVResult is one TV search hit.
type TVResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Year         string  `json:"year"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
}

// MovieDetail is the full movie record.
type MovieDetail struct {
	ID               int64    `json:"id"`
	TMDBID           int64    `json:"tmdb_id"`
	IMDBID           string   `json:"imdb_id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title"`
	Year             string   `json:"year"`
	Overview         string   `json:"overview"`
	Runtime          int      `json:"runtime"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	VoteAverage      float64  `json:"vote_average"`
	Genres           []string `json:"genres"`
	SpokenLanguages  []string `json:"spoken_languages"`
	OriginalLanguage string   `json:"original_language"` // display name, not the ISO code
}

// SeasonSummary is one season entry in a TV detail record.
type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

// TVDetail is the full TV show record.
type TVDetail struct {
	ID               int64           `json:"id"`
	TMDBID           int64           `json:"tmdb_id"`
	IMDBID           string          `json:"imdb_id"`
	Name             string          `json:"name"`
	OriginalName     string          `json:"original_name"`
	Year             string          `json:"year"`
	Overview         string          `json:"overview"`
	PosterPath       string          `json:"poster_path"`
	VoteAverage      float64         `json:"vote_average"`
	Genres           []string        `json:"genres"`
	SpokenLanguages  []string        `json:"spoken_languages"`
	OriginalLanguage string          `json:"original_language"`
	NumberOfSeasons  int             `json:"number_of_seasons"`
	Seasons          []SeasonSummary `json:"seasons"`
}

// Episode is one episode record.
type Episode struct {
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number,omitempty"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	Runtime       int     `json:"runtime"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
}

// SeasonDetail is a season with its episode list.
type SeasonDetail struct {
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Episodes     []Episode `json:"episodes"`
}

// yearOf extracts the year component of a TMDB date ("2024-03-01").
func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
