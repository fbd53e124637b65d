// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package registry

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// Key prefixes for BadgerDB storage
const (
	playerKeyPrefix = "player:" // player:<id> -> playerRecord
	orderKeyPrefix  = "order:"  // order:<seq big-endian> -> id
	sequenceKey     = "meta:sequence"
)

// sequenceBandwidth is how many sequence numbers badger leases at once.
const sequenceBandwidth = 100

// playerRecord is the stored value for a player.
type playerRecord struct {
	Seq    uint64           `json:"seq"`
	Player features.Profile `json:"player"`
}

// BadgerRepository persists players in BadgerDB. Registration order is kept
// through an order index so List does not depend on key order.
type BadgerRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadgerRepository opens (or creates) a BadgerDB registry at path.
func OpenBadgerRepository(path string) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil                // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 16 << 20 // 16MB, registry values are small
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for registry: %w", err)
	}

	repo, err := NewBadgerRepositoryFromDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewBadgerRepositoryFromDB creates a registry on an existing BadgerDB connection.
// Close releases the sequence lease and closes db.
func NewBadgerRepositoryFromDB(db *badger.DB) (*BadgerRepository, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("get registry sequence: %w", err)
	}
	return &BadgerRepository{db: db, seq: seq}, nil
}

func playerKey(id string) []byte {
	return []byte(playerKeyPrefix + id)
}

func orderKey(seq uint64) []byte {
	key := make([]byte, len(orderKeyPrefix)+8)
	copy(key, orderKeyPrefix)
	binary.BigEndian.PutUint64(key[len(orderKeyPrefix):], seq)
	return key
}

func readRecord(txn *badger.Txn, id string) (*playerRecord, error) {
	item, err := txn.Get(playerKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	var rec playerRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decode player %s: %w", id, err)
	}
	return &rec, nil
}

// List implements Repository. All reads happen in one read transaction.
func (r *BadgerRepository) List(ctx context.Context) ([]features.Profile, error) {
	players := []features.Profile{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(orderKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			rec, err := readRecord(txn, id)
			if err != nil {
				return err
			}
			players = append(players, rec.Player)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// Get implements Repository.
func (r *BadgerRepository) Get(ctx context.Context, id string) (*features.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var player features.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		rec, err := readRecord(txn, id)
		if err != nil {
			return err
		}
		player = rec.Player
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// Add implements Repository.
func (r *BadgerRepository) Add(ctx context.Context, player features.Profile) (*features.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := prepare(&player)
	seq, err := r.seq.Next()
	if err != nil {
		return nil, fmt.Errorf("next registry sequence: %w", err)
	}

	data, err := json.Marshal(playerRecord{Seq: seq, Player: stored})
	if err != nil {
		return nil, fmt.Errorf("marshal player: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(playerKey(stored.ID))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check player: %w", err)
		}

		if err := txn.Set(playerKey(stored.ID), data); err != nil {
			return fmt.Errorf("set player: %w", err)
		}
		if err := txn.Set(orderKey(seq), []byte(stored.ID)); err != nil {
			return fmt.Errorf("set order index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := stored.Clone()
	return &out, nil
}

// Remove implements Repository.
func (r *BadgerRepository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		rec, err := readRecord(txn, id)
		if err != nil {
			return err
		}

		if err := txn.Delete(playerKey(id)); err != nil {
			return fmt.Errorf("delete player: %w", err)
		}
		if err := txn.Delete(orderKey(rec.Seq)); err != nil {
			return fmt.Errorf("delete order index: %w", err)
		}
		return nil
	})
}

// Count implements Repository.
func (r *BadgerRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(orderKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}

// Close releases the sequence lease and closes the database.
func (r *BadgerRepository) Close() error {
	var errs []error
	if err := r.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release registry sequence: %w", err))
	}
	if err := r.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close registry db: %w", err))
	}
	return errors.Join(errs...)
}
