package torrent

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	minPieceLength = 32 * 1024
	maxPieceLength = 16 * 1024 * 1024

	// targetPieceCount drives piece length selection: the smallest power
	// of two that keeps the piece count at or under this target.
	targetPieceCount = 1500
)

// ErrEmptyPayload is returned when the source contains no data to hash.
var ErrEmptyPayload = errors.New("torrent payload is empty")

// PieceLength picks the piece size for a payload of totalSize bytes.
func PieceLength(totalSize int64) int64 {
	length := int64(minPieceLength)
	for length < maxPieceLength && totalSize/length > targetPieceCount {
		length *= 2
	}
	return length
}

// Builder creates metainfo documents from files on disk.
type Builder struct {
	trackers  []string
	comment   string
	createdBy string
	workers   int
	now       func() time.Time
	logger    *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTrackers sets the announce URLs. The first becomes the primary
// announce; each URL gets its own tier in announce-list.
func WithTrackers(trackers []string) BuilderOption {
	return func(b *Builder) { b.trackers = trackers }
}

// WithComment sets the torrent comment.
func WithComment(comment string) BuilderOption {
	return func(b *Builder) { b.comment = comment }
}

// WithCreatedBy sets the created-by tag.
func WithCreatedBy(createdBy string) BuilderOption {
	return func(b *Builder) { b.createdBy = createdBy }
}

// WithClock overrides the creation-date source, used by tests for
// reproducible output.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithWorkers caps the number of concurrent piece hashers.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) { b.workers = n }
}

// NewBuilder creates a Builder.
func NewBuilder(logger *slog.Logger, opts ...BuilderOption) *Builder {
	b := &Builder{
		comment:   "Created by TorrentForge",
		createdBy: "torrentforge",
		workers:   runtime.GOMAXPROCS(0),
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = 1
	}
	return b
}

// Build hashes the file or directory at path into a metainfo document.
// A directory produces a multi-file torrent with every regular file under
// it, ordered lexicographically by relative path. A plain file produces a
// single-file torrent.
func (b *Builder) Build(ctx context.Context, path string) (*MetaInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	var (
		files []FileEntry
		total int64
		paths []string
	)
	if stat.IsDir() {
		files, paths, err = collectFiles(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			total += f.Length
		}
	} else {
		total = stat.Size()
		paths = []string{path}
	}
	if total == 0 {
		return nil, ErrEmptyPayload
	}

	pieceLength := PieceLength(total)
	start := time.Now()
	pieces, err := b.hashPieces(ctx, paths, total, pieceLength)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("hashed torrent payload",
		"path", path,
		"total_bytes", total,
		"piece_length", pieceLength,
		"pieces", len(pieces)/sha1.Size,
		"elapsed", time.Since(start))

	meta := &MetaInfo{
		Comment:      b.comment,
		CreatedBy:    b.createdBy,
		CreationDate: b.now().Unix(),
		Name:         filepath.Base(path),
		PieceLength:  pieceLength,
		Pieces:       pieces,
		Files:        files,
	}
	if files == nil {
		meta.Length = total
	}
	if len(b.trackers) > 0 {
		meta.Announce = b.trackers[0]
		for _, t := range b.trackers {
			meta.AnnounceList = append(meta.AnnounceList, []string{t})
		}
	}
	return meta, nil
}

// collectFiles walks dir and returns file entries plus the absolute paths
// in the same order. Order is lexicographic by slash-separated relative
// path so the piece stream is reproducible.
func collectFiles(dir string) ([]FileEntry, []string, error) {
	type walked struct {
		rel string
		abs string
		n   int64
	}
	var found []walked

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		found = append(found, walked{rel: filepath.ToSlash(rel), abs: path, n: info.Size()})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk source dir: %w", err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].rel < found[j].rel })

	files := make([]FileEntry, 0, len(found))
	paths := make([]string, 0, len(found))
	for _, w := range found {
		files = append(files, FileEntry{
			Length: w.n,
			Path:   strings.Split(w.rel, "/"),
		})
		paths = append(paths, w.abs)
	}
	return files, paths, nil
}

// hashPieces reads the files as one concatenated stream and returns the
// SHA-1 digests of each piece. Reads are sequential; hashing runs on a
// bounded worker pool.
func (b *Builder) hashPieces(ctx context.Context, paths []string, total, pieceLength int64) ([]byte, error) {
	pieceCount := int((total + pieceLength - 1) / pieceLength)
	digests := make([][sha1.Size]byte, pieceCount)

	type job struct {
		index int
		data  []byte
	}
	jobs := make(chan job, b.workers)

	g, ctx := errgroup.WithContext(ctx)
	for range b.workers {
		g.Go(func() error {
			for j := range jobs {
				digests[j.index] = sha1.Sum(j.data)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		reader := newMultiReader(paths)
		defer reader.Close()

		for i := range pieceCount {
			buf := make([]byte, pieceLength)
			n, err := io.ReadFull(reader, buf)
			if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("read piece %d: %w", i, err)
			}
			select {
			case jobs <- job{index: i, data: buf[:n]}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pieces := make([]byte, 0, pieceCount*sha1.Size)
	for _, d := range digests {
		pieces = append(pieces, d[:]...)
	}
	return pieces, nil
}

// multiReader streams a list of files back to back, opening each lazily.
type multiReader struct {
	paths   []string
	current *os.File
}

func newMultiReader(paths []string) *multiReader {
	return &multiReader{paths: paths}
}

func (r *multiReader) Read(p []byte) (int, error) {
	for {
		if r.current == nil {
			if len(r.paths) == 0 {
				return 0, io.EOF
			}
			f, err := os.Open(r.paths[0])
			if err != nil {
				return 0, err
			}
			r.current = f
			r.paths = r.paths[1:]
		}
		n, err := r.current.Read(p)
		if errors.Is(err, io.EOF) {
			r.current.Close()
			r.current = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (r *multiReader) Close() error {
	if r.current != nil {
		return r.current.Close()
	}
	return nil
}
