// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/corruptabledb"

	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/utils"
)

var _ state.Immutable = (*ReadOnly)(nil)

// New opens a pebble database under [chainDataDir]/[namespace] and registers
// its metrics with [gatherer].
func New(cfg pebble.Config, chainDataDir string, namespace string, gatherer metrics.MultiGatherer) (database.Database, error) {
	path, err := utils.InitSubDirectory(chainDataDir, namespace)
	if err != nil {
		return nil, err
	}

	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := gatherer.Register(namespace, registry); err != nil {
		_ = db.Close()
		return nil, err
	}

	return corruptabledb.New(db), nil
}

// ReadOnly exposes committed database contents as [state.Immutable].
type ReadOnly struct {
	db database.KeyValueReader
}

func NewReadOnly(db database.KeyValueReader) *ReadOnly {
	return &ReadOnly{db: db}
}

func (r *ReadOnly) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}

// Fetch loads the committed value of every key in [ks]. Missing keys are
// omitted from the result.
func Fetch(db database.KeyValueReader, ks []string) (map[string][]byte, error) {
	values := make(map[string][]byte, len(ks))
	for _, k := range ks {
		v, err := db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}
