// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/blake2b"

	"github.com/tomtom215/unirex/internal/logging"
	"github.com/tomtom215/unirex/internal/recommend"
)

// bundleKeyPrefix namespaces bundle entries in the store.
const bundleKeyPrefix = "bundle:"

// BadgerStore persists raw bundle bytes across restarts so a bundle
// downloaded once is not downloaded again. Each value is a BLAKE2b-256
// digest followed by the bundle bytes; an entry whose digest does not match
// is dropped and reported as a miss.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a store at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	logging.Info().Str("path", path).Msg("Bundle cache opened")
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func bundleKey(d recommend.Domain) []byte {
	return []byte(bundleKeyPrefix + string(d))
}

// Name implements Source.
func (s *BadgerStore) Name() string { return "badger" }

// Fetch implements Source.
func (s *BadgerStore) Fetch(ctx context.Context, d recommend.Domain) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	var corrupt bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bundleKey(d))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s not cached", ErrBundleNotFound, d)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) < blake2b.Size256 {
				corrupt = true
				return nil
			}
			digest, payload := val[:blake2b.Size256], val[blake2b.Size256:]
			sum := blake2b.Sum256(payload)
			if !bytes.Equal(digest, sum[:]) {
				corrupt = true
				return nil
			}
			data = append([]byte(nil), payload...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if corrupt {
		logging.Warn().Str("domain", string(d)).Msg("Cached bundle failed digest check, dropping it")
		if delErr := s.Delete(d); delErr != nil {
			logging.Warn().Err(delErr).Str("domain", string(d)).Msg("Failed to drop corrupt bundle")
		}
		return nil, fmt.Errorf("%w: cached %s bundle is corrupt", ErrBundleNotFound, d)
	}
	return &Blob{Data: data, Source: s.Name()}, nil
}

// Put stores data as the bundle for d, replacing any previous entry.
func (s *BadgerStore) Put(d recommend.Domain, data []byte) error {
	sum := blake2b.Sum256(data)
	val := make([]byte, 0, len(sum)+len(data))
	val = append(val, sum[:]...)
	val = append(val, data...)

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bundleKey(d), val)
	}); err != nil {
		return fmt.Errorf("store %s bundle: %w", d, err)
	}
	return nil
}

// Delete removes the bundle for d. Deleting a missing entry is not an error.
func (s *BadgerStore) Delete(d recommend.Domain) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(bundleKey(d)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Domains returns the domains that have a cached bundle.
func (s *BadgerStore) Domains() ([]recommend.Domain, error) {
	var out []recommend.Domain
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(bundleKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			out = append(out, recommend.Domain(bytes.TrimPrefix(key, []byte(bundleKeyPrefix))))
		}
		return nil
	})
	return out, err
}

// CollectGarbage reclaims value log space left by replaced bundles.
// It is a no-op for in-memory databases.
func (s *BadgerStore) CollectGarbage() error {
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
