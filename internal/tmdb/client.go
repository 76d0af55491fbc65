package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/vmunix/torrentforge/pkg/release"
)

const defaultBaseURL = "https://api.themoviedb.org/3"
const defaultCacheTTL = 24 * time.Hour

// maxSearchResults caps how many search hits are returned to the UI. The cap
// applies after similarity ranking so the closest matches survive the cut.
const maxSearchResults = 10

// ErrNoAPIKey is returned when no TMDB API key is configured.
var ErrNoAPIKey = errors.New("TMDB API key not configured")

// ErrNotFound is returned when the requested record doesn't exist.
var ErrNotFound = errors.New("not found")

// APIError carries a non-OK TMDB response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API error: status %d: %s", e.StatusCode, e.Body)
}

// KeyFunc supplies the API key at call time. The key lives in the mutable
// config store, so the client reads it per request instead of capturing it
// at construction.
type KeyFunc func() string

// StaticKey wraps a fixed API key as a KeyFunc.
func StaticKey(key string) KeyFunc {
	return func() string { return key }
}

// Client is a TMDB API client.
type Client struct {
	key        KeyFunc
	baseURL    string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCacheTTL sets the detail-lookup cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = newCache(ttl) }
}

// NewClient creates a TMDB client.
func NewClient(key KeyFunc, opts ...Option) *Client {
	c := &Client{
		key:     key,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET against a TMDB path and decodes into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	key := c.key()
	if key == "" {
		return ErrNoAPIKey
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var body [256]byte
		n, _ := resp.Body.Read(body[:])
		return &APIError{StatusCode: resp.StatusCode, Body: string(body[:n])}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// SearchMovies searches TMDB for movies matching query. Results are ranked
// by title similarity to the query before the cap is applied.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]MovieResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var raw struct {
		Results []struct {
			ID            int64   `json:"id"`
			Title         string  `json:"title"`
			OriginalTitle string  `json:"original_title"`
			ReleaseDate   string  `json:"release_date"`
			Overview      string  `json:"overview"`
			PosterPath    string  `json:"poster_path"`
			VoteAverage   float64 `json:"vote_average"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/search/movie", params, &raw); err != nil {
		return nil, err
	}

	results := make([]MovieResult, 0, len(raw.Results))
	for _, m := range raw.Results {
		results = append(results, MovieResult{
			ID:            m.ID,
			Title:         m.Title,
			OriginalTitle: m.OriginalTitle,
			Year:          yearOf(m.ReleaseDate),
			Overview:      m.Overview,
			PosterPath:    m.PosterPath,
			VoteAverage:   m.VoteAverage,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return release.Similarity(query, results[i].Title) >
			release.Similarity(query, results[j].Title)
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results, nil
}

// SearchTV searches TMDB for TV shows matching query. Results are ranked by
// name similarity to the query before the cap is applied.
func (c *Client) SearchTV(ctx context.Context, query string, year int) ([]TVResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}

	var raw struct {
		Results []struct {
			ID           int64   `json:"id"`
			Name         string  `json:"name"`
			OriginalName string  `json:"original_name"`
			FirstAirDate string  `json:"first_air_date"`
			Overview     string  `json:"overview"`
			PosterPath   string  `json:"poster_path"`
			VoteAverage  float64 `json:"vote_average"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/search/tv", params, &raw); err != nil {
		return nil, err
	}

	results := make([]TVResult, 0, len(raw.Results))
	for _, s := range raw.Results {
		results = append(results, TVResult{
			ID:           s.ID,
			Name:         s.Name,
			OriginalName: s.OriginalName,
			Year:         yearOf(s.FirstAirDate),
			Overview:     s.Overview,
			PosterPath:   s.PosterPath,
			VoteAverage:  s.VoteAverage,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return release.Similarity(query, results[i].Name) >
			release.Similarity(query, results[j].Name)
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results, nil
}

// GetMovie fetches the full movie record.
func (c *Client) GetMovie(ctx context.Context, id int64) (*MovieDetail, error) {
	cacheKey := fmt.Sprintf("movie/%d", id)
	if v, ok := c.cache.get(cacheKey); ok {
		return v.(*MovieDetail), nil
	}

	var raw struct {
		ID               int64   `json:"id"`
		IMDBID           string  `json:"imdb_id"`
		Title            string  `json:"title"`
		OriginalTitle    string  `json:"original_title"`
		ReleaseDate      string  `json:"release_date"`
		Overview         string  `json:"overview"`
		Runtime          int     `json:"runtime"`
		PosterPath       string  `json:"poster_path"`
		BackdropPath     string  `json:"backdrop_path"`
		VoteAverage      float64 `json:"vote_average"`
		OriginalLanguage string  `json:"original_language"`
		Genres           []struct {
			Name string `json:"name"`
		} `json:"genres"`
		SpokenLanguages []struct {
			EnglishName string `json:"english_name"`
		} `json:"spoken_languages"`
	}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &raw); err != nil {
		return nil, err
	}

	detail := &MovieDetail{
		ID:               raw.ID,
		TMDBID:           raw.ID,
		IMDBID:           raw.IMDBID,
		Title:            raw.Title,
		OriginalTitle:    raw.OriginalTitle,
		Year:             yearOf(raw.ReleaseDate),
		Overview:         raw.Overview,
		Runtime:          raw.Runtime,
		PosterPath:       raw.PosterPath,
		BackdropPath:     raw.BackdropPath,
		VoteAverage:      raw.VoteAverage,
		OriginalLanguage: LanguageName(raw.OriginalLanguage),
		Genres:           namesOf(raw.Genres),
		SpokenLanguages:  englishNamesOf(raw.SpokenLanguages),
	}
	c.cache.set(cacheKey, detail)
	return detail, nil
}

// GetTV fetches the full TV show record, including the IMDb ID from the
// external-ids sub-resource. Specials (season 0) are filtered out.
func (c *Client) GetTV(ctx context.Context, id int64) (*TVDetail, error) {
	cacheKey := fmt.Sprintf("tv/%d", id)
	if v, ok := c.cache.get(cacheKey); ok {
		return v.(*TVDetail), nil
	}

	var raw struct {
		ID               int64   `json:"id"`
		Name             string  `json:"name"`
		OriginalName     string  `json:"original_name"`
		FirstAirDate     string  `json:"first_air_date"`
		Overview         string  `json:"overview"`
		PosterPath       string  `json:"poster_path"`
		VoteAverage      float64 `json:"vote_average"`
		OriginalLanguage string  `json:"original_language"`
		NumberOfSeasons  int     `json:"number_of_seasons"`
		Genres           []struct {
			Name string `json:"name"`
		} `json:"genres"`
		SpokenLanguages []struct {
			EnglishName string `json:"english_name"`
		} `json:"spoken_languages"`
		Seasons []struct {
			SeasonNumber int    `json:"season_number"`
			Name         string `json:"name"`
			EpisodeCount int    `json:"episode_count"`
			AirDate      string `json:"air_date"`
		} `json:"seasons"`
	}
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), nil, &raw); err != nil {
		return nil, err
	}

	// Best-effort: a failed external-ids lookup just leaves IMDBID empty.
	var ext struct {
		IMDBID string `json:"imdb_id"`
	}
	_ = c.get(ctx, fmt.Sprintf("/tv/%d/external_ids", id), nil, &ext)

	detail := &TVDetail{
		ID:               raw.ID,
		TMDBID:           raw.ID,
		IMDBID:           ext.IMDBID,
		Name:             raw.Name,
		OriginalName:     raw.OriginalName,
		Year:             yearOf(raw.FirstAirDate),
		Overview:         raw.Overview,
		PosterPath:       raw.PosterPath,
		VoteAverage:      raw.VoteAverage,
		OriginalLanguage: LanguageName(raw.OriginalLanguage),
		NumberOfSeasons:  raw.NumberOfSeasons,
		Genres:           namesOf(raw.Genres),
		SpokenLanguages:  englishNamesOf(raw.SpokenLanguages),
	}
	for _, s := range raw.Seasons {
		if s.SeasonNumber <= 0 {
			continue
		}
		detail.Seasons = append(detail.Seasons, SeasonSummary{
			SeasonNumber: s.SeasonNumber,
			Name:         s.Name,
			EpisodeCount: s.EpisodeCount,
			AirDate:      s.AirDate,
		})
	}
	c.cache.set(cacheKey, detail)
	return detail, nil
}

// GetSeason fetches a season's episode list.
func (c *Client) GetSeason(ctx context.Context, showID int64, season int) (*SeasonDetail, error) {
	cacheKey := fmt.Sprintf("tv/%d/season/%d", showID, season)
	if v, ok := c.cache.get(cacheKey); ok {
		return v.(*SeasonDetail), nil
	}

	var raw struct {
		SeasonNumber int       `json:"season_number"`
		Name         string    `json:"name"`
		Episodes     []Episode `json:"episodes"`
	}
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", showID, season), nil, &raw); err != nil {
		return nil, err
	}

	detail := &SeasonDetail{
		SeasonNumber: raw.SeasonNumber,
		Name:         raw.Name,
		Episodes:     raw.Episodes,
	}
	c.cache.set(cacheKey, detail)
	return detail, nil
}

// GetEpisode fetches one episode record.
func (c *Client) GetEpisode(ctx context.Context, showID int64, season, episode int) (*Episode, error) {
	var ep Episode
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d/episode/%d", showID, season, episode), nil, &ep); err != nil {
		return nil, err
	}
	return &ep, nil
}

func namesOf(genres []struct {
	Name string `json:"name"`
}) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		out = append(out, g.Name)
	}
	return out
}

func englishNamesOf(langs []struct {
	EnglishName string `json:"english_name"`
}) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, l.EnglishName)
	}
	return out
}
