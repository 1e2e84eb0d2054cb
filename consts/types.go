// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// Note: registries error on duplicate IDs, so IDs are assigned explicitly
// to avoid accidental remapping.
const (
	// Action TypeIDs
	DeployID            uint8 = 0
	IncrementID         uint8 = 1
	DecrementID         uint8 = 2
	ResetID             uint8 = 3
	TransferOwnershipID uint8 = 4

	// Auth TypeIDs
	ED25519ID uint8 = 0

	// CounterAddressID prefixes every deployed counter address so it can
	// never collide with an address derived from a public key.
	CounterAddressID uint8 = 0xc0
)

const (
	Name = "countervm"
	HRP  = "counter"
)
