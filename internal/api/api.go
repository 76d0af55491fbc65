// Package api implements the HTTP facade consumed by the desktop UI.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vmunix/torrentforge/internal/config"
	"github.com/vmunix/torrentforge/internal/packager"
	"github.com/vmunix/torrentforge/internal/probe"
	"github.com/vmunix/torrentforge/internal/tmdb"
	"github.com/vmunix/torrentforge/internal/workspace"
)

// Server routes API requests to the underlying services.
type Server struct {
	cfg    *config.Store
	ws     *workspace.Manager
	pkg    *packager.Packager
	tmdb   *tmdb.Client
	prober *probe.Prober
	logger *slog.Logger
}

// New creates an API server.
func New(cfg *config.Store, ws *workspace.Manager, pkg *packager.Packager, tmdbClient *tmdb.Client, prober *probe.Prober, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		ws:     ws,
		pkg:    pkg,
		tmdb:   tmdbClient,
		prober: prober,
		logger: logger,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.health)

	// Staging
	mux.HandleFunc("POST /parse", s.parseFile)
	mux.HandleFunc("POST /parse-season", s.parseSeason)
	mux.HandleFunc("POST /check-conflict", s.checkConflict)
	mux.HandleFunc("POST /check-season-conflict", s.checkSeasonConflict)

	// Staged torrents
	mux.HandleFunc("GET /torrents", s.listTorrents)
	mux.HandleFunc("POST /torrent-details", s.torrentDetails)
	mux.HandleFunc("DELETE /torrent", s.deleteTorrent)
	mux.HandleFunc("GET /system/delete-capability", s.deleteCapability)

	// Preview & create
	mux.HandleFunc("POST /preview-torrent", s.previewMovie)
	mux.HandleFunc("POST /create-torrent", s.createMovie)
	mux.HandleFunc("POST /preview-episode-torrent", s.previewEpisode)
	mux.HandleFunc("POST /create-episode-torrent", s.createEpisode)
	mux.HandleFunc("POST /preview-season-torrent", s.previewSeason)
	mux.HandleFunc("POST /create-season-torrent", s.createSeason)
	mux.HandleFunc("GET /projects", s.listProjects)

	// Metadata
	mux.HandleFunc("POST /tmdb/search", s.searchMovies)
	mux.HandleFunc("POST /tmdb/search-tv", s.searchTV)
	mux.HandleFunc("GET /tmdb/movie/{id}", s.getMovie)
	mux.HandleFunc("GET /tmdb/tv/{id}", s.getTV)
	mux.HandleFunc("GET /tmdb/tv/{id}/season/{season}", s.getSeason)
	mux.HandleFunc("GET /tmdb/tv/{id}/season/{season}/episode/{episode}", s.getEpisode)

	// Settings
	mux.HandleFunc("GET /config", s.getConfig)
	mux.HandleFunc("POST /config", s.updateConfig)
	mux.HandleFunc("POST /config/ascii-art", s.updateASCIIArt)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse matches the error shape the UI expects.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, code int, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: fmt.Sprintf(format, args...)})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func readJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps service-layer errors onto HTTP statuses: rename
// collisions are 409, validation and missing-input failures are 400, a
// missing TMDB record is 404, anything else is 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var collision *packager.CollisionError
	switch {
	case errors.As(err, &collision):
		writeError(w, http.StatusConflict, "%s", collision.Error())
	case errors.Is(err, workspace.ErrSourceNotFound),
		errors.Is(err, workspace.ErrNoVideoFiles),
		errors.Is(err, packager.ErrFolderNotFound),
		errors.Is(err, packager.ErrNoVideoFile),
		errors.Is(err, packager.ErrEmptyName),
		errors.Is(err, tmdb.ErrNoAPIKey):
		writeError(w, http.StatusBadRequest, "%s", err.Error())
	case errors.Is(err, tmdb.ErrNotFound):
		writeError(w, http.StatusNotFound, "%s", err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "%s", err.Error())
	}
}
