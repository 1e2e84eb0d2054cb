// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/codectest"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

// deployed returns a store holding a counter owned by [owner] with [value].
func deployed(t *testing.T, owner codec.Address, value uint64) (*chaintest.InMemoryStore, codec.Address) {
	require := require.New(t)
	ctx := context.Background()
	store := chaintest.NewInMemoryStore()
	deployID := ids.GenerateTestID()
	_, err := (&Deploy{}).Execute(ctx, store, 0, owner, deployID)
	require.NoError(err)
	addr := CounterAddress(deployID)
	require.NoError(storage.SetValue(ctx, store, addr, uint256.NewInt(value)))
	return store, addr
}

func requireValue(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address, want uint64) {
	v, err := storage.GetValue(ctx, im, addr)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(want), v)
}

func TestDeployAction(t *testing.T) {
	ctx := context.Background()
	owner := codectest.NewRandomAddress()
	actionID := ids.GenerateTestID()
	store := chaintest.NewInMemoryStore()
	addr := CounterAddress(actionID)
	require.Equal(t, consts.CounterAddressID, addr[0])

	tests := []chaintest.ActionTest{
		{
			Name:     "deploys counter",
			Action:   &Deploy{},
			State:    store,
			Actor:    owner,
			ActionID: actionID,
			ExpectedOutput: &counter.OwnershipTransferred{
				PreviousOwner: codec.EmptyAddress,
				NewOwner:      owner,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				got, exists, err := storage.GetOwner(ctx, mu, addr)
				require.NoError(t, err)
				require.True(t, exists)
				require.Equal(t, owner, got)
				requireValue(ctx, t, mu, addr, 0)
			},
		},
		{
			Name:        "same action ID cannot deploy twice",
			Action:      &Deploy{},
			State:       store,
			Actor:       codectest.NewRandomAddress(),
			ActionID:    actionID,
			ExpectedErr: counter.ErrAlreadyDeployed,
		},
	}
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestMutatingActions(t *testing.T) {
	ctx := context.Background()
	owner := codectest.NewRandomAddress()
	stranger := codectest.NewRandomAddress()
	next := codectest.NewRandomAddress()

	type testCase struct {
		name     string
		value    uint64
		actor    codec.Address
		action   func(codec.Address) chain.Action
		output   func(codec.Address) codec.Typed
		err      error
		newValue uint64
	}
	tests := []testCase{
		{
			name:  "increment",
			value: 10,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Increment{Counter: a, Step: uint256.NewInt(5)}
			},
			output: func(codec.Address) codec.Typed {
				return &counter.Incremented{Caller: owner, NewValue: uint256.NewInt(15)}
			},
			newValue: 15,
		},
		{
			name:  "increment zero step",
			value: 10,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Increment{Counter: a, Step: uint256.NewInt(0)}
			},
			err:      counter.ErrInvalidStep,
			newValue: 10,
		},
		{
			name:  "increment by stranger",
			value: 10,
			actor: stranger,
			action: func(a codec.Address) chain.Action {
				return &Increment{Counter: a, Step: uint256.NewInt(5)}
			},
			err:      counter.ErrNotOwner,
			newValue: 10,
		},
		{
			name:  "increment overflow",
			value: 1,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Increment{Counter: a, Step: new(uint256.Int).SetAllOne()}
			},
			err:      counter.ErrArithmeticOverflow,
			newValue: 1,
		},
		{
			name:  "decrement",
			value: 10,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Decrement{Counter: a, Step: uint256.NewInt(10)}
			},
			output: func(codec.Address) codec.Typed {
				return &counter.Decremented{Caller: owner, NewValue: uint256.NewInt(0)}
			},
			newValue: 0,
		},
		{
			name:  "decrement below zero",
			value: 70,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Decrement{Counter: a, Step: uint256.NewInt(150)}
			},
			err:      counter.ErrUnderflow,
			newValue: 70,
		},
		{
			name:  "decrement zero step",
			value: 0,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Decrement{Counter: a, Step: uint256.NewInt(0)}
			},
			err:      counter.ErrInvalidStep,
			newValue: 0,
		},
		{
			name:  "decrement by stranger",
			value: 10,
			actor: stranger,
			action: func(a codec.Address) chain.Action {
				return &Decrement{Counter: a, Step: uint256.NewInt(1)}
			},
			err:      counter.ErrNotOwner,
			newValue: 10,
		},
		{
			name:  "reset",
			value: 40,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Reset{Counter: a}
			},
			output: func(codec.Address) codec.Typed {
				return &counter.Reset{OldValue: uint256.NewInt(40)}
			},
			newValue: 0,
		},
		{
			name:  "reset at zero",
			value: 0,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &Reset{Counter: a}
			},
			output: func(codec.Address) codec.Typed {
				return &counter.Reset{OldValue: uint256.NewInt(0)}
			},
			newValue: 0,
		},
		{
			name:  "reset by stranger",
			value: 40,
			actor: stranger,
			action: func(a codec.Address) chain.Action {
				return &Reset{Counter: a}
			},
			err:      counter.ErrNotOwner,
			newValue: 40,
		},
		{
			name:  "transfer ownership",
			value: 33,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &TransferOwnership{Counter: a, NewOwner: next}
			},
			output: func(codec.Address) codec.Typed {
				return &counter.OwnershipTransferred{PreviousOwner: owner, NewOwner: next}
			},
			newValue: 33,
		},
		{
			name:  "transfer ownership to zero address",
			value: 33,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &TransferOwnership{Counter: a, NewOwner: codec.EmptyAddress}
			},
			err:      counter.ErrInvalidOwner,
			newValue: 33,
		},
		{
			name:  "transfer ownership to self",
			value: 33,
			actor: owner,
			action: func(a codec.Address) chain.Action {
				return &TransferOwnership{Counter: a, NewOwner: owner}
			},
			err:      counter.ErrNoOpTransfer,
			newValue: 33,
		},
		{
			name:  "transfer ownership by stranger",
			value: 33,
			actor: stranger,
			action: func(a codec.Address) chain.Action {
				return &TransferOwnership{Counter: a, NewOwner: stranger}
			},
			err:      counter.ErrNotOwner,
			newValue: 33,
		},
	}
	for _, tc := range tests {
		store, addr := deployed(t, owner, tc.value)
		var output codec.Typed
		if tc.output != nil {
			output = tc.output(addr)
		}
		newValue := tc.newValue
		test := chaintest.ActionTest{
			Name:           tc.name,
			Action:         tc.action(addr),
			State:          store,
			Actor:          tc.actor,
			ActionID:       ids.GenerateTestID(),
			ExpectedOutput: output,
			ExpectedErr:    tc.err,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				requireValue(ctx, t, mu, addr, newValue)
			},
		}
		test.Run(ctx, t)
	}
}

func TestUnknownCounter(t *testing.T) {
	ctx := context.Background()
	test := chaintest.ActionTest{
		Name:        "increment missing counter",
		Action:      &Increment{Counter: codectest.NewRandomAddress(), Step: uint256.NewInt(1)},
		State:       chaintest.NewInMemoryStore(),
		Actor:       codectest.NewRandomAddress(),
		ExpectedErr: counter.ErrNotDeployed,
	}
	test.Run(ctx, t)
}

func TestActionMarshal(t *testing.T) {
	require := require.New(t)
	registry, err := Registry()
	require.NoError(err)

	addr := CounterAddress(ids.GenerateTestID())
	for _, action := range []chain.Action{
		&Deploy{Salt: 9},
		&Increment{Counter: addr, Step: uint256.NewInt(5)},
		&Increment{Counter: addr, Step: uint256.NewInt(0)},
		&Decrement{Counter: addr, Step: new(uint256.Int).SetAllOne()},
		&Reset{Counter: addr},
		&TransferOwnership{Counter: addr, NewOwner: codectest.NewRandomAddress()},
		&TransferOwnership{Counter: addr, NewOwner: codec.EmptyAddress},
	} {
		p := codec.NewWriter(consts.ByteLen+action.Size(), consts.NetworkSizeLimit)
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
		require.NoError(p.Err())
		require.Len(p.Bytes(), consts.ByteLen+action.Size())

		r := codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
		parsed, err := registry.Unmarshal(r)
		require.NoError(err)
		require.True(r.Empty())
		require.Equal(action, parsed)
	}
}

func TestActionUnmarshalTruncated(t *testing.T) {
	registry, err := Registry()
	require.NoError(t, err)

	addr := CounterAddress(ids.GenerateTestID())
	for _, action := range []chain.Action{
		&Deploy{Salt: 9},
		&Increment{Counter: addr, Step: uint256.NewInt(5)},
		&Decrement{Counter: addr, Step: new(uint256.Int).SetAllOne()},
		&Reset{Counter: addr},
		&TransferOwnership{Counter: addr, NewOwner: codectest.NewRandomAddress()},
	} {
		p := codec.NewWriter(consts.ByteLen+action.Size(), consts.NetworkSizeLimit)
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
		require.NoError(t, p.Err())
		b := p.Bytes()

		// Every cut after the type byte lands inside some field.
		for n := consts.ByteLen; n < len(b); n++ {
			require.NotPanics(t, func() {
				_, err := registry.Unmarshal(codec.NewReader(b[:n], consts.NetworkSizeLimit))
				require.Error(t, err, "action %d cut at %d", action.GetTypeID(), n)
			})
		}
	}
}

func TestActionRequiresCounter(t *testing.T) {
	require := require.New(t)
	registry, err := Registry()
	require.NoError(err)

	action := &Reset{}
	p := codec.NewWriter(consts.ByteLen+action.Size(), consts.NetworkSizeLimit)
	p.PackByte(action.GetTypeID())
	action.Marshal(p)

	_, err = registry.Unmarshal(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.ErrorIs(err, codec.ErrFieldNotPopulated)
}

func BenchmarkIncrement(b *testing.B) {
	owner := codectest.NewRandomAddress()
	deployID := ids.GenerateTestID()
	addr := CounterAddress(deployID)
	bench := chaintest.ActionBenchmark{
		Name:   "increment",
		Action: &Increment{Counter: addr, Step: uint256.NewInt(1)},
		CreateState: func() state.Mutable {
			store := chaintest.NewInMemoryStore()
			_, err := (&Deploy{}).Execute(context.Background(), store, 0, owner, deployID)
			if err != nil {
				b.Fatal(err)
			}
			return store
		},
		Actor: owner,
	}
	bench.Run(context.Background(), b)
}
