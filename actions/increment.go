// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
)

var _ chain.Action = (*Increment)(nil)

type Increment struct {
	// Counter is the address of the counter to update.
	Counter codec.Address `json:"counter"`

	// Step is added to the counter value.
	Step *uint256.Int `json:"step"`
}

func (*Increment) GetTypeID() uint8 {
	return consts.IncrementID
}

func (i *Increment) StateKeys(codec.Address, ids.ID) state.Keys {
	return counter.StateKeys(i.Counter)
}

func (i *Increment) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	e, err := counter.New(mu, i.Counter).Increment(ctx, actor, i.Step)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (*Increment) Size() int {
	return codec.AddressLen + consts.Uint256Len
}

func (i *Increment) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
	p.PackUint256(i.Step)
}

// Zero steps decode successfully so they are rejected by the counter itself.
func UnmarshalIncrement(p *codec.Packer) (chain.Action, error) {
	var increment Increment
	p.UnpackAddress(true, &increment.Counter)
	increment.Step = p.UnpackUint256(false)
	return &increment, p.Err()
}
