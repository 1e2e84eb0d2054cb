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

var _ chain.Action = (*Reset)(nil)

type Reset struct {
	Counter codec.Address `json:"counter"`
}

func (*Reset) GetTypeID() uint8 {
	return consts.ResetID
}

func (r *Reset) StateKeys(codec.Address, ids.ID) state.Keys {
	return counter.StateKeys(r.Counter)
}

func (r *Reset) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	e, err := counter.New(mu, r.Counter).Reset(ctx, actor)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (*Reset) Size() int {
	return codec.AddressLen
}

func (r *Reset) Marshal(p *codec.Packer) {
	p.PackAddress(r.Counter)
}

func UnmarshalReset(p *codec.Packer) (chain.Action, error) {
	var reset Reset
	p.UnpackAddress(true, &reset.Counter)
	return &reset, p.Err()
}
