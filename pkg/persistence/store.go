// Package persistence implements C5: file naming, on-disk framing, and
// the optional compression wrapper for chunk files.
package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/voxelstream/voxelstream/pkg/external"
	"github.com/voxelstream/voxelstream/pkg/voxel"
)

// ErrFilesystem wraps any read/write/open failure reported by the
// underlying FileSystem.
var ErrFilesystem = errors.New("persistence: filesystem error")

// Store reads and writes per-chunk files under a configured directory.
type Store struct {
	dir      string
	compress bool
	fs       external.FileSystem
	log      *slog.Logger

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New creates a Store rooted at dir. If compress is true, saved files are
// wrapped with a length-prefixed zstd frame. Directory creation happens on
// the first call to EnsureDir, not here.
func New(dir string, compress bool, fs external.FileSystem, log *slog.Logger) (*Store, error) {
	if fs == nil {
		fs = OSFileSystem{}
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Store{dir: dir, compress: compress, fs: fs, log: log.With("component", "persistence")}

	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			enc.Close()
			return nil, err
		}
		s.enc = enc
		s.dec = dec
	}
	return s, nil
}

// Close releases the zstd encoder/decoder, when compression is enabled.
func (s *Store) Close() {
	if s.enc != nil {
		s.enc.Close()
	}
	if s.dec != nil {
		s.dec.Close()
	}
}

// EnsureDir creates the store's root directory, recursively and
// idempotently.
func (s *Store) EnsureDir() error {
	if err := s.fs.MkdirAll(s.dir); err != nil {
		s.log.Error("create save directory failed", "dir", s.dir, "err", err)
		return fmt.Errorf("%w: %v", ErrFilesystem, err)
	}
	return nil
}

// FileName returns the sign-preserving file name for a chunk position:
// chunk_<x>_<y>_<z>.dat.
func FileName(pos voxel.ChunkCoord) string {
	return fmt.Sprintf("chunk_%d_%d_%d.dat", pos.X, pos.Y, pos.Z)
}

func (s *Store) path(pos voxel.ChunkCoord) string {
	return filepath.Join(s.dir, FileName(pos))
}

// Save writes c's serialized bytes to its chunk file, applying the
// length-prefixed zstd wrapper when compression is enabled.
func (s *Store) Save(c *voxel.Chunk) error {
	return s.SaveBytes(c.Position, c.Serialize())
}

// SaveBytes writes an already-serialized chunk payload for pos. It exists
// so a caller can take a snapshot of a chunk's bytes synchronously and
// hand the write itself off to a background worker, per the concurrency
// model's requirement that such a worker never touch the live block
// array.
func (s *Store) SaveBytes(pos voxel.ChunkCoord, payload []byte) error {
	if s.compress {
		compressed := s.enc.EncodeAll(payload, nil)
		var header [4]byte
		binary.LittleEndian.PutUint32(header[:], uint32(len(compressed)))
		payload = append(header[:], compressed...)
	}

	if err := s.fs.WriteFile(s.path(pos), payload); err != nil {
		s.log.Error("save chunk failed", "chunk", pos, "err", err)
		return fmt.Errorf("%w: %v", ErrFilesystem, err)
	}
	return nil
}

// Load attempts to populate c from its on-disk file. It returns hit=false
// (no error) when no file exists, or when the file's header does not
// match c (HeaderMismatch is treated as "no save on disk" per policy). A
// payload length mismatch is reported as an error with hit=true, since a
// file existed but could not be decoded; c's block array is left all-air
// in that case (Chunk.Deserialize already resets it).
func (s *Store) Load(c *voxel.Chunk) (hit bool, err error) {
	exists, err := s.fs.Exists(s.path(c.Position))
	if err != nil {
		s.log.Error("stat chunk file failed", "chunk", c.Position, "err", err)
		return false, fmt.Errorf("%w: %v", ErrFilesystem, err)
	}
	if !exists {
		return false, nil
	}

	raw, err := s.fs.ReadFile(s.path(c.Position))
	if err != nil {
		s.log.Error("read chunk file failed", "chunk", c.Position, "err", err)
		return false, fmt.Errorf("%w: %v", ErrFilesystem, err)
	}

	if s.compress {
		if len(raw) < 4 {
			s.log.Error("compressed chunk file truncated", "chunk", c.Position)
			return false, fmt.Errorf("%w: truncated compressed file", ErrFilesystem)
		}
		n := binary.LittleEndian.Uint32(raw[:4])
		body := raw[4:]
		if uint32(len(body)) < n {
			s.log.Error("compressed chunk file truncated", "chunk", c.Position)
			return false, fmt.Errorf("%w: truncated compressed file", ErrFilesystem)
		}
		raw, err = s.dec.DecodeAll(body[:n], nil)
		if err != nil {
			s.log.Error("decompress chunk file failed", "chunk", c.Position, "err", err)
			return false, fmt.Errorf("%w: %v", ErrFilesystem, err)
		}
	}

	if err := c.Deserialize(raw); err != nil {
		if errors.Is(err, voxel.ErrHeaderMismatch) {
			s.log.Warn("chunk file header mismatch, treating as no save on disk", "chunk", c.Position)
			return false, nil
		}
		s.log.Error("chunk payload decode failed", "chunk", c.Position, "err", err)
		return true, err
	}

	return true, nil
}
