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

var _ chain.Action = (*Decrement)(nil)

type Decrement struct {
	Counter codec.Address `json:"counter"`

	// Step is subtracted from the counter value. It may not exceed the value.
	Step *uint256.Int `json:"step"`
}

func (*Decrement) GetTypeID() uint8 {
	return consts.DecrementID
}

func (d *Decrement) StateKeys(codec.Address, ids.ID) state.Keys {
	return counter.StateKeys(d.Counter)
}

func (d *Decrement) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	e, err := counter.New(mu, d.Counter).Decrement(ctx, actor, d.Step)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (*Decrement) Size() int {
	return codec.AddressLen + consts.Uint256Len
}

func (d *Decrement) Marshal(p *codec.Packer) {
	p.PackAddress(d.Counter)
	p.PackUint256(d.Step)
}

func UnmarshalDecrement(p *codec.Packer) (chain.Action, error) {
	var decrement Decrement
	p.UnpackAddress(true, &decrement.Counter)
	decrement.Step = p.UnpackUint256(false)
	return &decrement, p.Err()
}
