// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

var _ database.Database = (*Database)(nil)

type Config struct {
	CacheSize             int  `json:"cacheSize"`
	BytesPerSync          int  `json:"bytesPerSync"`
	WALBytesPerSync       int  `json:"walBytesPerSync"`
	MaxOpenFiles          int  `json:"maxOpenFiles"`
	ConcurrentCompactions int  `json:"concurrentCompactions"`
	Sync                  bool `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:             256 * 1024 * 1024,
		BytesPerSync:          1024 * 1024,
		WALBytesPerSync:       1024 * 1024,
		MaxOpenFiles:          4_096,
		ConcurrentCompactions: 1,
		Sync:                  true,
	}
}

// Database wraps a pebble instance so it can be used anywhere an
// avalanchego [database.Database] is expected.
type Database struct {
	lock   sync.RWMutex
	db     *pebble.DB
	closed bool

	writeOptions *pebble.WriteOptions

	metrics *metrics
	closing chan struct{}
	done    sync.WaitGroup
}

// New opens (or creates) a pebble database at [file]. The returned registry
// holds the database metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		writeOptions: &pebble.WriteOptions{Sync: cfg.Sync},
		metrics:      metrics,
		closing:      make(chan struct{}),
	}
	opts := &pebble.Options{
		Cache:           pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:    cfg.BytesPerSync,
		WALBytesPerSync: cfg.WALBytesPerSync,
		MaxOpenFiles:    cfg.MaxOpenFiles,
		MaxConcurrentCompactions: func() int {
			return cfg.ConcurrentCompactions
		},
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	defer opts.Cache.Unref()

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db

	d.done.Add(1)
	go func() {
		defer d.done.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	close(db.closing)
	db.done.Wait()
	return db.db.Close()
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	return nil, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// [data] is only valid until [closer] is closed.
	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, nil
}

func (db *Database) Put(key []byte, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return db.db.Set(key, value, db.writeOptions)
}

func (db *Database) Delete(key []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return db.db.Delete(key, db.writeOptions)
}

func (db *Database) Compact(start []byte, limit []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	if limit == nil {
		// pebble requires an explicit upper bound; walk to the last key.
		iter, err := db.db.NewIter(&pebble.IterOptions{})
		if err != nil {
			return err
		}
		if iter.Last() {
			limit = append([]byte{}, iter.Key()...)
			limit = append(limit, 0)
		}
		if err := iter.Close(); err != nil {
			return err
		}
		if limit == nil {
			return nil
		}
	}
	return db.db.Compact(start, limit, true)
}
