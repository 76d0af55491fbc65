package api

import (
	"net/http"
	"strconv"
)

type searchRequest struct {
	Query string `json:"query"`
	Year  int    `json:"year"`
}

// searchMovies proxies a TMDB movie search. The client ranks results by
// title similarity so the closest match to the parsed name comes first.
func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	results, err := s.tmdb.SearchMovies(r.Context(), req.Query, req.Year)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})
}

func (s *Server) searchTV(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	results, err := s.tmdb.SearchTV(r.Context(), req.Query, req.Year)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})
}

func pathInt(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return v, err == nil
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}
	detail, err := s.tmdb.GetMovie(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "movie": detail})
}

func (s *Server) getTV(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid show id")
		return
	}
	detail, err := s.tmdb.GetTV(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "show": detail})
}

func (s *Server) getSeason(w http.ResponseWriter, r *http.Request) {
	id, okID := pathInt(r, "id")
	season, okSeason := pathInt(r, "season")
	if !okID || !okSeason {
		writeError(w, http.StatusBadRequest, "invalid show id or season number")
		return
	}
	detail, err := s.tmdb.GetSeason(r.Context(), id, int(season))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "season": detail})
}

func (s *Server) getEpisode(w http.ResponseWriter, r *http.Request) {
	id, okID := pathInt(r, "id")
	season, okSeason := pathInt(r, "season")
	episode, okEpisode := pathInt(r, "episode")
	if !okID || !okSeason || !okEpisode {
		writeError(w, http.StatusBadRequest, "invalid show id, season, or episode number")
		return
	}
	detail, err := s.tmdb.GetEpisode(r.Context(), id, int(season), int(episode))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "episode": detail})
}
