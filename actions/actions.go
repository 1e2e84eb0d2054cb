// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

// Registry returns the decoders for every counter action.
func Registry() (*codec.TypeParser[chain.Action], error) {
	r := codec.NewTypeParser[chain.Action]()
	for id, f := range map[uint8]codec.Decoder[chain.Action]{
		consts.DeployID:            UnmarshalDeploy,
		consts.IncrementID:         UnmarshalIncrement,
		consts.DecrementID:         UnmarshalDecrement,
		consts.ResetID:             UnmarshalReset,
		consts.TransferOwnershipID: UnmarshalTransferOwnership,
	} {
		if err := r.Register(id, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// CounterAddress is the address of the counter created by the deploy action
// with [actionID].
func CounterAddress(actionID ids.ID) codec.Address {
	return codec.CreateAddress(consts.CounterAddressID, actionID)
}
