// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import "github.com/ava-labs/avalanchego/database"

var _ database.Batch = (*batch)(nil)

// batch buffers operations in memory and applies them in a single pebble
// batch on [Write], so either every operation lands or none does.
type batch struct {
	database.BatchOps

	db *Database
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (b *batch) Write() error {
	b.db.lock.RLock()
	defer b.db.lock.RUnlock()

	if b.db.closed {
		return database.ErrClosed
	}
	pb := b.db.db.NewBatch()
	defer pb.Close()

	for _, op := range b.Ops {
		var err error
		if op.Delete {
			err = pb.Delete(op.Key, nil)
		} else {
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	return pb.Commit(b.db.writeOptions)
}

func (b *batch) Inner() database.Batch {
	return b
}
