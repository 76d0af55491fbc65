// Package torrent builds BitTorrent v1 metainfo files.
package torrent

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"os"

	bencode "github.com/jackpal/bencode-go"
)

// FileEntry is one file in a multi-file torrent, with its path split into
// components relative to the torrent root.
type FileEntry struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

// MetaInfo is a fully assembled torrent document ready to serialize.
type MetaInfo struct {
	Announce     string
	AnnounceList [][]string
	Comment      string
	CreatedBy    string
	CreationDate int64

	// Info dictionary fields. Files is nil for single-file torrents, in
	// which case Length holds the file size.
	Name        string
	PieceLength int64
	Pieces      []byte
	Length      int64
	Files       []FileEntry
}

// infoDict assembles the info dictionary. Single-file and multi-file
// torrents have different shapes, so optional keys are built as a map.
func (m *MetaInfo) infoDict() map[string]any {
	info := map[string]any{
		"name":         m.Name,
		"piece length": m.PieceLength,
		"pieces":       string(m.Pieces),
	}
	if m.Files != nil {
		files := make([]any, 0, len(m.Files))
		for _, f := range m.Files {
			path := make([]any, 0, len(f.Path))
			for _, p := range f.Path {
				path = append(path, p)
			}
			files = append(files, map[string]any{
				"length": f.Length,
				"path":   path,
			})
		}
		info["files"] = files
	} else {
		info["length"] = m.Length
	}
	return info
}

// Encode writes the bencoded metainfo document to w.
func (m *MetaInfo) Encode(w io.Writer) error {
	doc := map[string]any{
		"comment":       m.Comment,
		"created by":    m.CreatedBy,
		"creation date": m.CreationDate,
		"info":          m.infoDict(),
	}
	if m.Announce != "" {
		doc["announce"] = m.Announce
	}
	if len(m.AnnounceList) > 0 {
		tiers := make([]any, 0, len(m.AnnounceList))
		for _, tier := range m.AnnounceList {
			urls := make([]any, 0, len(tier))
			for _, u := range tier {
				urls = append(urls, u)
			}
			tiers = append(tiers, urls)
		}
		doc["announce-list"] = tiers
	}

	if err := bencode.Marshal(w, doc); err != nil {
		return fmt.Errorf("encode metainfo: %w", err)
	}
	return nil
}

// InfoHash computes the SHA-1 hash of the bencoded info dictionary.
func (m *MetaInfo) InfoHash() ([20]byte, error) {
	var buf bytes.Buffer
	if err := bencode.Marshal(&buf, m.infoDict()); err != nil {
		return [20]byte{}, fmt.Errorf("encode info dict: %w", err)
	}
	return sha1.Sum(buf.Bytes()), nil
}

// TotalLength is the payload size across all files.
func (m *MetaInfo) TotalLength() int64 {
	if m.Files == nil {
		return m.Length
	}
	var total int64
	for _, f := range m.Files {
		total += f.Length
	}
	return total
}

// WriteFile serializes the metainfo to path, replacing any existing file.
func (m *MetaInfo) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create torrent file: %w", err)
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close torrent file: %w", err)
	}
	return nil
}
