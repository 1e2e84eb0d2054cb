// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	BoolLen   = 1
	IDLen     = 32
	IntLen    = 4
	Uint8Len  = 1
	Uint16Len = 2
	Uint64Len = 8
	Int64Len  = 8

	// Uint256Len is the fixed width of a packed counter value.
	Uint256Len = 32

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	MillisecondsPerSecond = 1000

	// NetworkSizeLimit bounds the size of a single encoded transaction.
	NetworkSizeLimit = 2_044_723 // 1.95 MiB
)
