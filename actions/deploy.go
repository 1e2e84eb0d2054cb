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

var _ chain.Action = (*Deploy)(nil)

// Deploy creates a new counter owned by the actor. The counter lives at
// [CounterAddress] of the transaction ID.
type Deploy struct {
	// Salt distinguishes otherwise identical deployments by the same actor.
	Salt uint64 `json:"salt"`
}

func (*Deploy) GetTypeID() uint8 {
	return consts.DeployID
}

func (*Deploy) StateKeys(_ codec.Address, actionID ids.ID) state.Keys {
	return counter.StateKeys(CounterAddress(actionID))
}

func (*Deploy) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	actionID ids.ID,
) (codec.Typed, error) {
	e, err := counter.Deploy(ctx, mu, CounterAddress(actionID), actor)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (*Deploy) Size() int {
	return consts.Uint64Len
}

func (d *Deploy) Marshal(p *codec.Packer) {
	p.PackUint64(d.Salt)
}

func UnmarshalDeploy(p *codec.Packer) (chain.Action, error) {
	var deploy Deploy
	deploy.Salt = p.UnpackUint64(false)
	return &deploy, p.Err()
}
