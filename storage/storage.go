// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

// State
// 0x0/ (counter owner)
//   -> [contract] => owner
// 0x1/ (counter value)
//   -> [contract] => value
// 0x2/ (height)
// 0x3/ (accepted transactions)
//   -> [txID] => height

const (
	ownerPrefix byte = iota
	valuePrefix
	heightPrefix
	txPrefix
)

const (
	OwnerChunks  uint16 = 1
	ValueChunks  uint16 = 1
	HeightChunks uint16 = 1
	TxChunks     uint16 = 1
)

var ErrInvalidValueLength = errors.New("invalid value length")

// [ownerPrefix] + [contract] + [chunks]
func OwnerKey(contract codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = ownerPrefix
	copy(k[1:], contract[:])
	return keys.EncodeChunks(k, OwnerChunks)
}

// [valuePrefix] + [contract] + [chunks]
func ValueKey(contract codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = valuePrefix
	copy(k[1:], contract[:])
	return keys.EncodeChunks(k, ValueChunks)
}

func HeightKey() []byte {
	return keys.EncodeChunks([]byte{heightPrefix}, HeightChunks)
}

// [txPrefix] + [txID] + [chunks]
func TxKey(txID ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen)
	k[0] = txPrefix
	copy(k[1:], txID[:])
	return keys.EncodeChunks(k, TxChunks)
}

// GetOwner returns the owner of [contract] and whether the counter exists.
func GetOwner(
	ctx context.Context,
	im state.Immutable,
	contract codec.Address,
) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, OwnerKey(contract))
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	owner, err := codec.ToAddress(v)
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	return owner, true, nil
}

func SetOwner(
	ctx context.Context,
	mu state.Mutable,
	contract codec.Address,
	owner codec.Address,
) error {
	return mu.Insert(ctx, OwnerKey(contract), owner[:])
}

// GetValue returns the value of the counter at [contract]. A counter that
// has never been written holds zero.
func GetValue(
	ctx context.Context,
	im state.Immutable,
	contract codec.Address,
) (*uint256.Int, error) {
	v, err := im.GetValue(ctx, ValueKey(contract))
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	if len(v) != consts.Uint256Len {
		return nil, fmt.Errorf("%w: value has %d bytes", ErrInvalidValueLength, len(v))
	}
	var b [consts.Uint256Len]byte
	copy(b[:], v)
	return new(uint256.Int).SetBytes32(b[:]), nil
}

func SetValue(
	ctx context.Context,
	mu state.Mutable,
	contract codec.Address,
	value *uint256.Int,
) error {
	b := value.Bytes32()
	return mu.Insert(ctx, ValueKey(contract), b[:])
}

// GetHeight returns the number of accepted transactions.
func GetHeight(ctx context.Context, im state.Immutable) (uint64, error) {
	v, err := im.GetValue(ctx, HeightKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, fmt.Errorf("%w: height has %d bytes", ErrInvalidValueLength, len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

func SetHeight(ctx context.Context, mu state.Mutable, height uint64) error {
	return mu.Insert(ctx, HeightKey(), binary.BigEndian.AppendUint64(nil, height))
}

// GetTx returns the height [txID] was accepted at, if any.
func GetTx(ctx context.Context, im state.Immutable, txID ids.ID) (uint64, bool, error) {
	v, err := im.GetValue(ctx, TxKey(txID))
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, fmt.Errorf("%w: tx marker has %d bytes", ErrInvalidValueLength, len(v))
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func StoreTx(ctx context.Context, mu state.Mutable, txID ids.ID, height uint64) error {
	return mu.Insert(ctx, TxKey(txID), binary.BigEndian.AppendUint64(nil, height))
}
