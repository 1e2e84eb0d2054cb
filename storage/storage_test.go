// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/codectest"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"
)

func newView(ks ...[]byte) *tstate.TStateView {
	scope := state.Keys{}
	for _, k := range ks {
		scope.Add(string(k), state.All)
	}
	return tstate.New(len(ks)).NewView(scope, map[string][]byte{})
}

func TestKeysAreDistinct(t *testing.T) {
	require := require.New(t)
	a := codectest.NewRandomAddress()
	b := codectest.NewRandomAddress()

	all := [][]byte{
		OwnerKey(a),
		OwnerKey(b),
		ValueKey(a),
		ValueKey(b),
		HeightKey(),
		TxKey(ids.GenerateTestID()),
	}
	seen := map[string]struct{}{}
	for _, k := range all {
		_, ok := seen[string(k)]
		require.False(ok)
		seen[string(k)] = struct{}{}
		chunks, ok := keys.MaxChunks(k)
		require.True(ok)
		require.Equal(uint16(1), chunks)
	}
}

func TestOwner(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	contract := codectest.NewRandomAddress()
	owner := codectest.NewRandomAddress()
	view := newView(OwnerKey(contract))

	got, exists, err := GetOwner(ctx, view, contract)
	require.NoError(err)
	require.False(exists)
	require.Equal(codec.EmptyAddress, got)

	require.NoError(SetOwner(ctx, view, contract, owner))
	got, exists, err = GetOwner(ctx, view, contract)
	require.NoError(err)
	require.True(exists)
	require.Equal(owner, got)
}

func TestValue(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	contract := codectest.NewRandomAddress()
	view := newView(ValueKey(contract))

	v, err := GetValue(ctx, view, contract)
	require.NoError(err)
	require.True(v.IsZero())

	max := new(uint256.Int).SetAllOne()
	require.NoError(SetValue(ctx, view, contract, max))
	v, err = GetValue(ctx, view, contract)
	require.NoError(err)
	require.Equal(max, v)
}

func TestHeightAndTx(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	txID := ids.GenerateTestID()
	view := newView(HeightKey(), TxKey(txID))

	h, err := GetHeight(ctx, view)
	require.NoError(err)
	require.Zero(h)
	require.NoError(SetHeight(ctx, view, 7))
	h, err = GetHeight(ctx, view)
	require.NoError(err)
	require.Equal(uint64(7), h)

	_, ok, err := GetTx(ctx, view, txID)
	require.NoError(err)
	require.False(ok)
	require.NoError(StoreTx(ctx, view, txID, 7))
	at, ok, err := GetTx(ctx, view, txID)
	require.NoError(err)
	require.True(ok)
	require.Equal(uint64(7), at)
}

func TestReadOnlyAndFetch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	contract := codectest.NewRandomAddress()
	owner := codectest.NewRandomAddress()

	require.NoError(db.Put(OwnerKey(contract), owner[:]))

	got, exists, err := GetOwner(ctx, NewReadOnly(db), contract)
	require.NoError(err)
	require.True(exists)
	require.Equal(owner, got)

	values, err := Fetch(db, []string{string(OwnerKey(contract)), string(ValueKey(contract))})
	require.NoError(err)
	require.Len(values, 1)
	require.Equal(owner[:], values[string(OwnerKey(contract))])
}

func TestInvalidValueLength(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	contract := codectest.NewRandomAddress()

	require.NoError(db.Put(ValueKey(contract), []byte{1, 2, 3}))
	_, err := GetValue(ctx, NewReadOnly(db), contract)
	require.ErrorIs(err, ErrInvalidValueLength)
}
