// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
)

var _ database.Iterator = (*iter)(nil)

type iter struct {
	it      *pebble.Iterator
	started bool
	valid   bool
	err     error

	key   []byte
	value []byte
}

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, nil)
}

func (db *Database) NewIteratorWithStart(start []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(start, nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, prefix)
}

func (db *Database) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return &iter{err: database.ErrClosed}
	}
	it, err := db.db.NewIter(keyRange(start, prefix))
	if err != nil {
		return &iter{err: err}
	}
	return &iter{it: it}
}

func (i *iter) Next() bool {
	if i.it == nil || i.err != nil {
		return false
	}
	if !i.started {
		i.valid = i.it.First()
		i.started = true
	} else {
		i.valid = i.it.Next()
	}
	if !i.valid {
		i.key, i.value = nil, nil
		return false
	}
	i.key = append([]byte{}, i.it.Key()...)
	i.value = append([]byte{}, i.it.Value()...)
	return true
}

func (i *iter) Error() error {
	if i.err != nil {
		return i.err
	}
	if i.it == nil {
		return nil
	}
	return i.it.Error()
}

func (i *iter) Key() []byte {
	return i.key
}

func (i *iter) Value() []byte {
	return i.value
}

func (i *iter) Release() {
	if i.it == nil {
		return
	}
	if err := i.it.Close(); err != nil && i.err == nil {
		i.err = err
	}
	i.it = nil
}

// keyRange returns the bounds of an iteration that starts at the larger of
// [start] and [prefix] and stops after the last key carrying [prefix].
func keyRange(start, prefix []byte) *pebble.IterOptions {
	opts := &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	}
	if bytes.Compare(start, prefix) > 0 {
		opts.LowerBound = start
	}
	return opts
}

// prefixUpperBound returns the smallest key that is larger than every key
// with [prefix], or nil if there is no such key.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte{}, prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}
