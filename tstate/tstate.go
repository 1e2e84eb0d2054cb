// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/countervm/state"
)

// TState defines a struct for storing temporary state.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// NewView returns a view of [ts] limited to [scope]. [storage] holds the
// values of the in-scope keys as they existed before [ts] was created.
func (ts *TState) NewView(scope state.Keys, storage map[string][]byte) *TStateView {
	return &TStateView{
		ts:                 ts,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], len(scope)),

		ops: make([]*op, 0, defaultOps),

		scope:        scope,
		scopeStorage: storage,
	}
}

// OpIndex returns the number of operations committed to [ts].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys changed in [ts].
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteChanges writes every changed key to [db] in lexicographic key order.
//
// Callers are expected to pass a batch so that the changes land atomically.
func (ts *TState) WriteChanges(_ context.Context, db database.KeyValueWriterDeleter) error {
	ts.l.RLock()
	defer ts.l.RUnlock()

	keys := maps.Keys(ts.changedKeys)
	slices.Sort(keys)
	for _, key := range keys {
		v := ts.changedKeys[key]
		if v.IsNothing() {
			if err := db.Delete([]byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := db.Put([]byte(key), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
