// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package trends

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodboard/internal/models"
)

const keyPrefix = "trend:"

// DiskStore is the long-lived cache tier. Entries carry a badger TTL so
// expiry needs no sweeping.
type DiskStore struct {
	db     *badger.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// OpenDiskStore opens (or creates) the store at path. An empty path keeps
// the store in memory.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenDiskStore(path string, ttl time.Duration, logger zerolog.Logger) (*DiskStore, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open trend cache: %w", err)
	}

	logger = logger.With().Str("component", "trend-store").Logger()
	logger.Info().Str("path", path).Dur("ttl", ttl).Msg("trend cache opened")
	return &DiskStore{db: db, ttl: ttl, logger: logger}, nil
}

// Get returns the cached series for key.
func (d *DiskStore) Get(key string) (models.TrendSeries, bool, error) {
	var series models.TrendSeries
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &series)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.TrendSeries{}, false, nil
	}
	if err != nil {
		return models.TrendSeries{}, false, fmt.Errorf("read trend cache: %w", err)
	}
	return series, true, nil
}

// Set stores series under key for the store TTL.
func (d *DiskStore) Set(key string, series models.TrendSeries) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode trend series: %w", err)
	}
	err = d.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(keyPrefix+key), data).WithTTL(d.ttl))
	})
	if err != nil {
		return fmt.Errorf("write trend cache: %w", err)
	}
	return nil
}

// Clear deletes every entry and returns how many were live.
func (d *DiskStore) Clear() (int, error) {
	var n int
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count trend cache: %w", err)
	}
	if err := d.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return 0, fmt.Errorf("clear trend cache: %w", err)
	}
	return n, nil
}

// RunGC reclaims value log space until nothing is left to rewrite and
// returns the number of files rewritten.
func (d *DiskStore) RunGC(discardRatio float64) (int, error) {
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	rewrites := 0
	for {
		err := d.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return rewrites, nil
		}
		if err != nil {
			return rewrites, fmt.Errorf("run GC: %w", err)
		}
		rewrites++
	}
}

// Close closes the underlying database.
func (d *DiskStore) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("close trend cache: %w", err)
	}
	return nil
}
