// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
)

var _ chain.Action = (*TransferOwnership)(nil)

type TransferOwnership struct {
	Counter codec.Address `json:"counter"`

	// NewOwner receives exclusive control of [Counter].
	NewOwner codec.Address `json:"newOwner"`
}

func (*TransferOwnership) GetTypeID() uint8 {
	return consts.TransferOwnershipID
}

func (t *TransferOwnership) StateKeys(codec.Address, ids.ID) state.Keys {
	return counter.StateKeys(t.Counter)
}

func (t *TransferOwnership) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	e, err := counter.New(mu, t.Counter).TransferOwnership(ctx, actor, t.NewOwner)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (*TransferOwnership) Size() int {
	return 2 * codec.AddressLen
}

func (t *TransferOwnership) Marshal(p *codec.Packer) {
	p.PackAddress(t.Counter)
	p.PackAddress(t.NewOwner)
}

// The zero owner decodes successfully so it is rejected by the counter
// itself.
func UnmarshalTransferOwnership(p *codec.Packer) (chain.Action, error) {
	var transfer TransferOwnership
	p.UnpackAddress(true, &transfer.Counter)
	p.UnpackAddress(false, &transfer.NewOwner)
	return &transfer, p.Err()
}
