package api

import (
	"net/http"
	"path/filepath"

	"github.com/vmunix/torrentforge/internal/config"
	"github.com/vmunix/torrentforge/internal/probe"
	"github.com/vmunix/torrentforge/pkg/release"
)

type fileRequest struct {
	Filepath string `json:"filepath"`
}

type folderRequest struct {
	FolderPath string `json:"folder_path"`
}

// parseFile stages a single video file: parse the name, probe the streams,
// copy it into a staging folder, and write the provisional NFO.
func (s *Server) parseFile(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	staged, err := s.ws.StageFile(config.ExpandPath(req.Filepath))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	info := release.Parse(staged.Filename)
	meta := s.prober.Probe(r.Context(), filepath.Join(staged.TargetFolder, staged.Filename))
	mediaType := string(info.Type())

	nfoPath, err := s.pkg.WriteInitialNFO(staged.TargetFolder, staged.BaseName, info, staged.Filename, mediaType)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"filename":      staged.Filename,
		"parsed":        info,
		"metadata":      meta,
		"media_type":    mediaType,
		"target_folder": staged.TargetFolder,
		"nfo_path":      nfoPath,
	})
}

// parseSeason stages a folder of episodes as a season pack. The first file
// stands in for the whole season when parsing and probing.
func (s *Server) parseSeason(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	staged, err := s.ws.StageFolder(config.ExpandPath(req.FolderPath))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	info := release.Parse(staged.FirstFile)
	meta := s.prober.Probe(r.Context(), filepath.Join(staged.TargetFolder, staged.FirstFile))

	nfoPath, err := s.pkg.WriteInitialNFO(staged.TargetFolder, staged.FolderName, info, staged.FirstFile, "season")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"folder_name":   staged.FolderName,
		"parsed":        info,
		"metadata":      meta,
		"media_type":    "season",
		"target_folder": staged.TargetFolder,
		"video_files":   staged.Files,
		"episode_count": staged.EpisodeCount,
		"total_size":    staged.TotalSize,
		"nfo_path":      nfoPath,
	})
}

func (s *Server) checkConflict(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	conflict, err := s.ws.CheckFileConflict(config.ExpandPath(req.Filepath))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conflict)
}

func (s *Server) checkSeasonConflict(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}

	conflict, err := s.ws.CheckFolderConflict(config.ExpandPath(req.FolderPath))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conflict)
}

func (s *Server) listTorrents(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.ws.List()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"torrents": entries})
}

// torrentDetails re-derives parse and probe data for an already staged
// folder, with season detection from the folder shape.
func (s *Server) torrentDetails(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	folder := config.ExpandPath(req.FolderPath)

	all, videos, err := s.ws.Contents(folder)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	videoFile := filepath.Base(folder) + ".mp4"
	videoFound := len(videos) > 0
	if videoFound {
		videoFile = videos[0]
	}

	info := release.Parse(videoFile)
	var meta probe.Info
	if videoFound {
		meta = s.prober.Probe(r.Context(), filepath.Join(folder, videoFile))
	}

	// A folder is a season pack when it holds several videos, or when its
	// own name carries a season marker without an episode.
	folderInfo := release.Parse(filepath.Base(folder))
	var mediaType string
	switch {
	case len(videos) > 1:
		mediaType = "season"
	case folderInfo.Season > 0 && folderInfo.Episode == 0:
		mediaType = "season"
	default:
		mediaType = string(info.Type())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"filename":      videoFile,
		"parsed":        info,
		"metadata":      meta,
		"media_type":    mediaType,
		"target_folder": folder,
		"files":         all,
	})
}

func (s *Server) deleteTorrent(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%s", err.Error())
		return
	}
	folder := config.ExpandPath(req.FolderPath)

	method, err := s.ws.Delete(folder)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.pkg.DeleteRecords(r.Context(), folder)

	message := "Torrent permanently deleted"
	if method == "trash" {
		message = "Torrent moved to trash"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"method":  method,
	})
}

func (s *Server) deleteCapability(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.DeleteCapability())
}
