package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/torrentforge/internal/config"
	"github.com/vmunix/torrentforge/internal/packager"
	"github.com/vmunix/torrentforge/internal/probe"
	"github.com/vmunix/torrentforge/internal/project"
	"github.com/vmunix/torrentforge/internal/tmdb"
	"github.com/vmunix/torrentforge/internal/workspace"
)

type testEnv struct {
	srv *httptest.Server
	out string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	store, err := config.Open(t.TempDir())
	require.NoError(t, err)

	out := t.TempDir()
	cfg := store.Config()
	cfg.OutputDirectory = out
	cfg.Trackers = []string{"http://tracker.example/announce"}
	require.NoError(t, store.SaveConfig(cfg))

	projects, err := project.Open(filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { projects.Close() })

	ws := workspace.NewManager(store.OutputDir, logger)
	clock := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	pkg := packager.New(store, projects, logger, packager.WithClock(clock))
	prober := probe.New(logger, probe.WithBinary("/nonexistent/ffprobe"))
	tmdbClient := tmdb.NewClient(func() string { return store.Config().APIKeys.TMDB })

	api := New(store, ws, pkg, tmdbClient, prober, logger)
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, out: out}
}

func (e *testEnv) post(t *testing.T, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(e.srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(e.srv.URL + path)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestParseFile(t *testing.T) {
	env := newTestEnv(t)
	src := t.TempDir()
	path := filepath.Join(src, "The.Movie.2020.1080p.BluRay.x264-GROUP.mkv")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))

	resp, body := env.post(t, "/parse", map[string]string{"filepath": path})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "movie", body["media_type"])
	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP.mkv", body["filename"])

	parsed := body["parsed"].(map[string]any)
	assert.Equal(t, "The Movie", parsed["title"])
	assert.Equal(t, float64(2020), parsed["year"])
	assert.Equal(t, "1080p", parsed["resolution"])

	// Probe degraded gracefully: size known, stream fields empty.
	metadata := body["metadata"].(map[string]any)
	assert.Equal(t, "2.00 KB", metadata["file_size"])
	assert.Equal(t, "", metadata["video_codec"])

	target := body["target_folder"].(string)
	assert.DirExists(t, target)
	assert.FileExists(t, filepath.Join(target, "The.Movie.2020.1080p.BluRay.x264-GROUP.mkv"))
	assert.FileExists(t, body["nfo_path"].(string))
}

func TestParseFile_Missing(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.post(t, "/parse", map[string]string{"filepath": "/nonexistent.mkv"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "not found")
}

func TestParseSeason(t *testing.T) {
	env := newTestEnv(t)
	src := t.TempDir()
	season := filepath.Join(src, "The.Show.S01.1080p.WEB-DL")
	require.NoError(t, os.Mkdir(season, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(season, "the.show.s01e01.mkv"), make([]byte, 1024), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(season, "the.show.s01e02.mkv"), make([]byte, 1024), 0o644))

	resp, body := env.post(t, "/parse-season", map[string]string{"folder_path": season})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "season", body["media_type"])
	assert.Equal(t, float64(2), body["episode_count"])
	assert.Equal(t, "2.00 KB", body["total_size"])
	assert.Len(t, body["video_files"].([]any), 2)
}

func TestCheckConflict(t *testing.T) {
	env := newTestEnv(t)
	src := t.TempDir()
	path := filepath.Join(src, "Movie.2021.mkv")
	require.NoError(t, os.WriteFile(path, make([]byte, 512), 0o644))

	_, body := env.post(t, "/check-conflict", map[string]string{"filepath": path})
	assert.Equal(t, false, body["conflict"])

	resp, _ := env.post(t, "/parse", map[string]string{"filepath": path})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.post(t, "/check-conflict", map[string]string{"filepath": path})
	assert.Equal(t, true, body["conflict"])
}

func TestListTorrents(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Mkdir(filepath.Join(env.out, "Staged.Release"), 0o755))

	_, body := env.get(t, "/torrents")
	torrents := body["torrents"].([]any)
	require.Len(t, torrents, 1)
	entry := torrents[0].(map[string]any)
	assert.Equal(t, "Staged.Release", entry["name"])
}

func TestCreateMovieFlow(t *testing.T) {
	env := newTestEnv(t)
	folder := filepath.Join(env.out, "The.Movie.2020")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "The.Movie.2020.mkv"), make([]byte, 4096), 0o644))

	req := map[string]any{
		"folder_path":   folder,
		"name":          "The Movie",
		"year":          "2020",
		"resolution":    "1080p",
		"source":        "BluRay",
		"video_codec":   "x264",
		"release_group": "GROUP",
	}

	resp, preview := env.post(t, "/preview-torrent", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "The.Movie.2020.1080p.BluRay.x264-GROUP", preview["base_name"])

	resp, created := env.post(t, "/create-torrent", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, preview["base_name"], created["new_base_name"])
	assert.FileExists(t, created["torrent_file"].(string))

	// Written NFO matches the previewed content.
	nfoBytes, err := os.ReadFile(filepath.Join(created["new_folder_path"].(string),
		created["new_base_name"].(string)+".NFO"))
	require.NoError(t, err)
	assert.Equal(t, preview["nfo_content"], string(nfoBytes))

	_, projects := env.get(t, "/projects")
	assert.Len(t, projects["projects"].([]any), 1)
}

func TestCreateMovie_Collision(t *testing.T) {
	env := newTestEnv(t)
	folder := filepath.Join(env.out, "The.Movie.2020")
	require.NoError(t, os.Mkdir(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "The.Movie.2020.mkv"), make([]byte, 1024), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(env.out, "The.Movie.2020.1080p.BluRay.x264-GROUP"), 0o755))

	req := map[string]any{
		"folder_path":   folder,
		"name":          "The Movie",
		"year":          "2020",
		"resolution":    "1080p",
		"source":        "BluRay",
		"video_codec":   "x264",
		"release_group": "GROUP",
	}

	resp, body := env.post(t, "/create-torrent", req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["detail"], "already exists")
}

func TestDeleteTorrent(t *testing.T) {
	env := newTestEnv(t)
	folder := filepath.Join(env.out, "Doomed.Release")
	require.NoError(t, os.Mkdir(folder, 0o755))

	payload, err := json.Marshal(map[string]string{"folder_path": folder})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodDelete, env.srv.URL+"/torrent", bytes.NewReader(payload))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, []any{"trash", "permanent"}, body["method"])
	assert.NoDirExists(t, folder)
}

func TestDeleteCapability(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.get(t, "/system/delete-capability")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["platform"])
	assert.NotEmpty(t, body["message"])
}

func TestConfigRoundtrip(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/config")
	require.Equal(t, true, body["success"])
	cfg := body["config"].(map[string]any)
	assert.NotEmpty(t, body["ascii_art"])

	cfg["release_group"] = "NEWGRP"
	resp, updated := env.post(t, "/config", map[string]any{"config": cfg})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, updated["success"])

	_, after := env.get(t, "/config")
	assert.Equal(t, "NEWGRP", after["config"].(map[string]any)["release_group"])
}

func TestTMDBSearch_NoAPIKey(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.post(t, "/tmdb/search", map[string]any{"query": "the matrix"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fmt.Sprint(body["detail"]), "API key")
}
