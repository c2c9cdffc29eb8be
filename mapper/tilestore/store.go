// Package tilestore persists the state of rendered tiles in a LevelDB
// database: the lowres summary of every tile and the hash of its hires
// model, used to skip tiles that did not change since the last render.
package tilestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/storage"
	"github.com/df-mc/voxelmap/mapper/cube"
	"github.com/df-mc/voxelmap/mapper/lowres"
)

// ErrNotFound is returned when no data is stored for a tile.
var ErrNotFound = errors.New("tilestore: tile not found")

const (
	keyMeta = 'm'
	keyHash = 'h'
)

// Config holds the settings of a Store.
type Config struct {
	// Log is the Logger used by the Store. If nil, slog.Default() is used.
	Log *slog.Logger
	// ReadOnly opens the database without allowing writes.
	ReadOnly bool
}

// Open opens the Store in the folder passed, creating it if it does not
// exist.
func (conf Config) Open(dir string) (*Store, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	db, err := leveldb.OpenFile(dir, &opt.Options{
		Compression: opt.FlateCompression,
		BlockSize:   16 * opt.KiB,
		ReadOnly:    conf.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("open tile store %v: %w", dir, err)
	}
	conf.Log.Debug("Opened tile store.", "dir", dir)
	return &Store{conf: conf, db: db}, nil
}

// OpenMemory opens a Store that is kept in memory only.
func (conf Config) OpenMemory() (*Store, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory tile store: %w", err)
	}
	return &Store{conf: conf, db: db}, nil
}

// Store holds the state of rendered tiles. It is safe for concurrent use.
type Store struct {
	conf Config
	db   *leveldb.DB
}

// PutMeta stores the lowres summary of the tile at pos.
func (s *Store) PutMeta(pos cube.ColumnPos, m *lowres.TileMeta) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode meta of tile %v: %w", pos, err)
	}
	if err := s.db.Put(key(pos, keyMeta), b, nil); err != nil {
		return fmt.Errorf("store meta of tile %v: %w", pos, err)
	}
	return nil
}

// Meta reads the lowres summary of the tile at pos. ErrNotFound is returned
// if no summary was stored.
func (s *Store) Meta(pos cube.ColumnPos) (*lowres.TileMeta, error) {
	b, err := s.get(pos, keyMeta)
	if err != nil {
		return nil, err
	}
	m := &lowres.TileMeta{}
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("decode meta of tile %v: %w", pos, err)
	}
	return m, nil
}

// PutHash stores the content hash of the tile at pos.
func (s *Store) PutHash(pos cube.ColumnPos, hash uint64) error {
	if err := s.db.Put(key(pos, keyHash), binary.LittleEndian.AppendUint64(nil, hash), nil); err != nil {
		return fmt.Errorf("store hash of tile %v: %w", pos, err)
	}
	return nil
}

// Hash reads the content hash of the tile at pos. ErrNotFound is
// returned if no hash was stored.
func (s *Store) Hash(pos cube.ColumnPos) (uint64, error) {
	b, err := s.get(pos, keyHash)
	if err != nil {
		return 0, err
	}
	if len(b) != 8 {
		return 0, fmt.Errorf("decode hash of tile %v: invalid length %v", pos, len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Changed checks if the hash stored for the tile at pos differs from the
// hash passed. Tiles without a stored hash are always changed.
func (s *Store) Changed(pos cube.ColumnPos, hash uint64) (bool, error) {
	stored, err := s.Hash(pos)
	switch {
	case errors.Is(err, ErrNotFound):
		return true, nil
	case err != nil:
		return false, err
	}
	return stored != hash, nil
}

// Tiles returns the positions of all tiles with a stored summary.
func (s *Store) Tiles() ([]cube.ColumnPos, error) {
	it := s.db.NewIterator(nil, nil)
	defer it.Release()

	var tiles []cube.ColumnPos
	for it.Next() {
		k := it.Key()
		if len(k) == 9 && k[8] == keyMeta {
			tiles = append(tiles, cube.ColumnPos{int(int32(binary.LittleEndian.Uint32(k))), int(int32(binary.LittleEndian.Uint32(k[4:])))})
		}
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate tiles: %w", err)
	}
	return tiles, nil
}

// Close closes the Store.
func (s *Store) Close() error {
	s.conf.Log.Debug("Closing tile store.")
	return s.db.Close()
}

func (s *Store) get(pos cube.ColumnPos, tag byte) ([]byte, error) {
	b, err := s.db.Get(key(pos, tag), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, fmt.Errorf("tile %v: %w", pos, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("read tile %v: %w", pos, err)
	}
	return b, nil
}

// key returns the database key of the data with a tag of the tile at pos.
func key(pos cube.ColumnPos, tag byte) []byte {
	b := make([]byte, 0, 9)
	b = binary.LittleEndian.AppendUint32(b, uint32(int32(pos.X())))
	b = binary.LittleEndian.AppendUint32(b, uint32(int32(pos.Z())))
	return append(b, tag)
}
