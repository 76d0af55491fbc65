package api

import (
	"net/http"

	"github.com/vmunix/torrentforge/internal/packager"
)

func (s *Server) previewMovie(w http.ResponseWriter, r *http.Request) {
	var req packager.MovieRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	preview, err := s.pkg.PreviewMovie(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) createMovie(w http.ResponseWriter, r *http.Request) {
	var req packager.MovieRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	result, err := s.pkg.CreateMovie(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) previewEpisode(w http.ResponseWriter, r *http.Request) {
	var req packager.EpisodeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	preview, err := s.pkg.PreviewEpisode(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) createEpisode(w http.ResponseWriter, r *http.Request) {
	var req packager.EpisodeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	result, err := s.pkg.CreateEpisode(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) previewSeason(w http.ResponseWriter, r *http.Request) {
	var req packager.SeasonRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	preview, err := s.pkg.PreviewSeason(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) createSeason(w http.ResponseWriter, r *http.Request) {
	var req packager.SeasonRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	result, err := s.pkg.CreateSeason(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.pkg.Projects(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}
