package api

import (
	"net/http"

	"github.com/vmunix/torrentforge/internal/config"
)

func (s *Server) getConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"config":    s.cfg.Config(),
		"ascii_art": s.cfg.ASCIIArt(),
	})
}

func (s *Server) updateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Config config.Config `json:"config"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	if err := s.cfg.SaveConfig(req.Config); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.logger.Info("config updated")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) updateASCIIArt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ASCIIArt string `json:"ascii_art"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	if err := s.cfg.SaveASCIIArt(req.ASCIIArt); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
