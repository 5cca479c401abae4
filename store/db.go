// Package store provides a persistent, bbolt-backed implementation of sonic.Memory
// and sonic.LibRepo, adapted from the teacher's node/store bucket-per-entity layout:
// a bucket per kind of key (destructible cells, immutable values, libraries), keyed
// by the entity's own canonical bytes. It is the only place outside cmd/ that logs
// with zerolog, since package sonic's verify path must stay allocation-light and
// side-effect-free per ยง5.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/state"
)

var (
	bucketDestructible = []byte("destructible_by_addr")
	bucketImmutable    = []byte("immutable_by_addr")
	bucketLibs         = []byte("libs_by_id")
)

// DB is a single contract's persisted cell and library store. It satisfies both
// sonic.Memory and sonic.LibRepo, so a Codex.verify call can be handed a *DB
// directly for both arguments.
type DB struct {
	path string
	db   *bolt.DB
	log  zerolog.Logger
}

// Open creates or opens the bbolt file at datadir/<contractHex>/store.db, ensuring
// its three buckets exist.
func Open(datadir, contractHex string) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("store: datadir required")
	}
	if contractHex == "" {
		return nil, fmt.Errorf("store: contract id required")
	}

	dir := filepath.Join(datadir, contractHex)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}

	path := filepath.Join(dir, "store.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt: %w", err)
	}

	d := &DB{
		path: path,
		db:   bdb,
		log:  zerolog.New(os.Stderr).With().Timestamp().Str("component", "store").Str("contract", contractHex).Logger(),
	}

	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketDestructible, bucketImmutable, bucketLibs} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	d.log.Info().Str("path", path).Msg("store opened")
	return d, nil
}

// Close releases the underlying bbolt file.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Path returns the on-disk file location, for diagnostics.
func (d *DB) Path() string { return d.path }

// Destructible implements sonic.Memory. A read does not remove the entry; callers
// that actually apply an operation's delta must call DeleteDestructible themselves
// once Codex.verify has accepted it, per ยง6.4's "any store built above it MUST be
// able to answer Memory queries exactly" and ยง3's read-once lifecycle.
func (d *DB) Destructible(addr state.CellAddr) (state.StateCell, bool) {
	key := addr.Canonical()
	var out state.StateCell
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketDestructible).Get(key)
		if v == nil {
			return nil
		}
		cell, decErr := decodeStateCell(v)
		if decErr != nil {
			return decErr
		}
		out = cell
		ok = true
		return nil
	})
	if err != nil {
		d.log.Error().Err(err).Str("addr", addr.Opid.String()).Msg("destructible lookup failed")
		return state.StateCell{}, false
	}
	return out, ok
}

// Immutable implements sonic.Memory.
func (d *DB) Immutable(addr state.CellAddr) (state.Value, bool) {
	key := addr.Canonical()
	var out state.Value
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketImmutable).Get(key)
		if v == nil {
			return nil
		}
		out = decodeStateValue(v)
		ok = true
		return nil
	})
	if err != nil {
		d.log.Error().Err(err).Str("addr", addr.Opid.String()).Msg("immutable lookup failed")
		return state.None, false
	}
	return out, ok
}

// GetLib implements sonic.LibRepo.
func (d *DB) GetLib(id alu.LibId) (*alu.Lib, bool) {
	var lib *alu.Lib
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLibs).Get(id[:])
		if v == nil {
			return nil
		}
		lib = alu.NewLib(v)
		return nil
	})
	if err != nil {
		d.log.Error().Err(err).Str("lib", id.String()).Msg("library lookup failed")
		return nil, false
	}
	return lib, lib != nil
}

// PutDestructible persists a newly-created destructible cell.
func (d *DB) PutDestructible(addr state.CellAddr, cell state.StateCell) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDestructible).Put(addr.Canonical(), encodeStateCell(cell))
	})
}

// DeleteDestructible removes a consumed cell, applying the read-once lifecycle of
// ยง3: "a destructible cell dies when some subsequent operation lists its address in
// destructible_in."
func (d *DB) DeleteDestructible(addr state.CellAddr) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDestructible).Delete(addr.Canonical())
	})
}

// PutImmutable persists a newly-created immutable value. Immutable cells are never
// deleted.
func (d *DB) PutImmutable(addr state.CellAddr, v state.Value) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketImmutable).Put(addr.Canonical(), encodeStateValue(v))
	})
}

// PutLib persists a library, keyed by its own content address.
func (d *DB) PutLib(lib *alu.Lib) error {
	id := lib.LibId()
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLibs).Put(id[:], lib.Code)
	})
}
