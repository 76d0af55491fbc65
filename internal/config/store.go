package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

//go:embed default_art.txt
var defaultASCIIArt string

const (
	configFile = "config.json"
	artFile    = "custom-ascii-art.txt"
)

// Store owns the persisted settings. It is the single writer: all saves go
// through its mutex, and writes land via temp-file-then-rename so a crash
// mid-save cannot corrupt the previously good document.
type Store struct {
	dir string

	mu  sync.RWMutex
	cfg Config
	art string
}

// Open loads the store from dir, writing built-in defaults on first run.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &Store{dir: dir}

	cfgPath := filepath.Join(dir, configFile)
	data, err := os.ReadFile(cfgPath)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &s.cfg); jsonErr != nil {
			// A corrupt file falls back to defaults rather than refusing
			// to start; the next save overwrites it.
			s.cfg = Default()
		}
	case os.IsNotExist(err):
		s.cfg = Default()
		if err := writeFileAtomic(cfgPath, mustMarshal(s.cfg)); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	s.cfg.applyDefaults()

	artPath := filepath.Join(dir, artFile)
	artData, err := os.ReadFile(artPath)
	switch {
	case err == nil:
		s.art = string(artData)
	case os.IsNotExist(err):
		s.art = defaultASCIIArt
		if err := writeFileAtomic(artPath, []byte(s.art)); err != nil {
			return nil, fmt.Errorf("write default ascii art: %w", err)
		}
	default:
		return nil, fmt.Errorf("read ascii art: %w", err)
	}

	return s, nil
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.Trackers = append([]string(nil), s.cfg.Trackers...)
	return cfg
}

// ASCIIArt returns the current banner text.
func (s *Store) ASCIIArt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.art
}

// OutputDir returns the configured output directory with ~ expanded.
func (s *Store) OutputDir() string {
	return ExpandPath(s.Config().OutputDirectory)
}

// SaveConfig persists a new configuration document.
func (s *Store) SaveConfig(cfg Config) error {
	cfg.applyDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(filepath.Join(s.dir, configFile), mustMarshal(cfg)); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	s.cfg = cfg
	return nil
}

// SaveASCIIArt persists a new banner independently of the config document.
func (s *Store) SaveASCIIArt(art string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(filepath.Join(s.dir, artFile), []byte(art)); err != nil {
		return fmt.Errorf("save ascii art: %w", err)
	}
	s.art = art
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func mustMarshal(cfg Config) []byte {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		// Config contains only plain JSON-serializable fields.
		panic(err)
	}
	return data
}
