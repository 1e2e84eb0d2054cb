// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/codectest"
	"github.com/ava-labs/countervm/tstate"
)

type fixture struct {
	view     *tstate.TStateView
	counter  *Counter
	owner    codec.Address
	stranger codec.Address
}

func newFixture(t *testing.T) *fixture {
	require := require.New(t)
	contract := codectest.NewRandomAddress()
	owner := codectest.NewRandomAddress()
	view := tstate.New(2).NewView(StateKeys(contract), map[string][]byte{})

	e, err := Deploy(context.Background(), view, contract, owner)
	require.NoError(err)
	require.Equal(&OwnershipTransferred{PreviousOwner: codec.EmptyAddress, NewOwner: owner}, e)

	return &fixture{
		view:     view,
		counter:  New(view, contract),
		owner:    owner,
		stranger: codectest.NewRandomAddress(),
	}
}

func (f *fixture) current(t *testing.T) *uint256.Int {
	v, err := f.counter.Current(context.Background())
	require.NoError(t, err)
	return v
}

func (f *fixture) set(t *testing.T, v uint64) {
	ctx := context.Background()
	_, err := f.counter.Reset(ctx, f.owner)
	require.NoError(t, err)
	if v > 0 {
		_, err = f.counter.Increment(ctx, f.owner, uint256.NewInt(v))
		require.NoError(t, err)
	}
}

func TestDeploy(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	owner, err := f.counter.Owner(ctx)
	require.NoError(err)
	require.Equal(f.owner, owner)
	require.True(f.current(t).IsZero())

	_, err = Deploy(ctx, f.view, f.counter.Address(), f.stranger)
	require.ErrorIs(err, ErrAlreadyDeployed)
	owner, err = f.counter.Owner(ctx)
	require.NoError(err)
	require.Equal(f.owner, owner)
}

func TestDeployZeroOwner(t *testing.T) {
	require := require.New(t)
	contract := codectest.NewRandomAddress()
	view := tstate.New(2).NewView(StateKeys(contract), map[string][]byte{})

	_, err := Deploy(context.Background(), view, contract, codec.EmptyAddress)
	require.ErrorIs(err, ErrInvalidOwner)
	require.Zero(view.OpIndex())
}

func TestNotDeployed(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	contract := codectest.NewRandomAddress()
	view := tstate.New(2).NewView(StateKeys(contract), map[string][]byte{})
	c := New(view, contract)

	_, err := c.Owner(ctx)
	require.ErrorIs(err, ErrNotDeployed)
	_, err = c.Current(ctx)
	require.ErrorIs(err, ErrNotDeployed)
	_, err = c.Increment(ctx, codectest.NewRandomAddress(), uint256.NewInt(1))
	require.ErrorIs(err, ErrNotDeployed)
}

func TestRunningSum(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	var sum uint64
	for _, d := range []int64{7, -3, 12, -16, 1, 40, -41} {
		if d > 0 {
			e, err := f.counter.Increment(ctx, f.owner, uint256.NewInt(uint64(d)))
			require.NoError(err)
			sum += uint64(d)
			require.Equal(uint256.NewInt(sum), e.NewValue)
			require.Equal(f.owner, e.Caller)
		} else {
			e, err := f.counter.Decrement(ctx, f.owner, uint256.NewInt(uint64(-d)))
			require.NoError(err)
			sum -= uint64(-d)
			require.Equal(uint256.NewInt(sum), e.NewValue)
		}
		require.Equal(uint256.NewInt(sum), f.current(t))
	}
	require.Zero(sum)
}

func TestDecrementUnderflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.set(t, 70)

	ops := f.view.OpIndex()
	e, err := f.counter.Decrement(ctx, f.owner, uint256.NewInt(150))
	require.ErrorIs(err, ErrUnderflow)
	require.Nil(e)
	require.Equal(uint256.NewInt(70), f.current(t))
	require.Equal(ops, f.view.OpIndex())

	// The full value may be removed.
	_, err = f.counter.Decrement(ctx, f.owner, uint256.NewInt(70))
	require.NoError(err)
	require.True(f.current(t).IsZero())

	_, err = f.counter.Decrement(ctx, f.owner, uint256.NewInt(1))
	require.ErrorIs(err, ErrUnderflow)
}

func TestZeroStep(t *testing.T) {
	ctx := context.Background()
	for _, start := range []uint64{0, 1, 1_000} {
		f := newFixture(t)
		f.set(t, start)
		ops := f.view.OpIndex()

		_, err := f.counter.Increment(ctx, f.owner, uint256.NewInt(0))
		require.ErrorIs(t, err, ErrInvalidStep)
		_, err = f.counter.Decrement(ctx, f.owner, uint256.NewInt(0))
		require.ErrorIs(t, err, ErrInvalidStep)
		_, err = f.counter.Increment(ctx, f.owner, nil)
		require.ErrorIs(t, err, ErrInvalidStep)

		require.Equal(t, uint256.NewInt(start), f.current(t))
		require.Equal(t, ops, f.view.OpIndex())
	}
}

func TestIncrementOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	max := new(uint256.Int).SetAllOne()
	_, err := f.counter.Increment(ctx, f.owner, max)
	require.NoError(err)

	ops := f.view.OpIndex()
	_, err = f.counter.Increment(ctx, f.owner, uint256.NewInt(1))
	require.ErrorIs(err, ErrArithmeticOverflow)
	require.Equal(max, f.current(t))
	require.Equal(ops, f.view.OpIndex())
}

func TestReset(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.set(t, 123)

	e, err := f.counter.Reset(ctx, f.owner)
	require.NoError(err)
	require.Equal(uint256.NewInt(123), e.OldValue)
	require.True(f.current(t).IsZero())

	// Resetting zero still succeeds and reports the old (zero) value.
	e, err = f.counter.Reset(ctx, f.owner)
	require.NoError(err)
	require.True(e.OldValue.IsZero())
	require.True(f.current(t).IsZero())
}

func TestNonOwnerRejected(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		call func(*fixture) (codec.Typed, error)
	}{
		{
			name: "increment",
			call: func(f *fixture) (codec.Typed, error) {
				return f.counter.Increment(ctx, f.stranger, uint256.NewInt(1))
			},
		},
		{
			name: "decrement",
			call: func(f *fixture) (codec.Typed, error) {
				return f.counter.Decrement(ctx, f.stranger, uint256.NewInt(1))
			},
		},
		{
			name: "reset",
			call: func(f *fixture) (codec.Typed, error) {
				return f.counter.Reset(ctx, f.stranger)
			},
		},
		{
			name: "transferOwnership",
			call: func(f *fixture) (codec.Typed, error) {
				return f.counter.TransferOwnership(ctx, f.stranger, f.stranger)
			},
		},
		{
			name: "zero step",
			call: func(f *fixture) (codec.Typed, error) {
				return f.counter.Increment(ctx, f.stranger, uint256.NewInt(0))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			f := newFixture(t)
			f.set(t, 9)
			ops := f.view.OpIndex()

			e, err := tt.call(f)
			require.ErrorIs(err, ErrNotOwner)
			require.Nil(e)
			require.Equal(ops, f.view.OpIndex())
			require.Equal(uint256.NewInt(9), f.current(t))
			owner, err := f.counter.Owner(ctx)
			require.NoError(err)
			require.Equal(f.owner, owner)
		})
	}
}

func TestTransferOwnership(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.set(t, 33)
	next := codectest.NewRandomAddress()

	e, err := f.counter.TransferOwnership(ctx, f.owner, next)
	require.NoError(err)
	require.Equal(&OwnershipTransferred{PreviousOwner: f.owner, NewOwner: next}, e)

	owner, err := f.counter.Owner(ctx)
	require.NoError(err)
	require.Equal(next, owner)
	require.Equal(uint256.NewInt(33), f.current(t))

	_, err = f.counter.Increment(ctx, f.owner, uint256.NewInt(1))
	require.ErrorIs(err, ErrNotOwner)
	_, err = f.counter.Increment(ctx, next, uint256.NewInt(1))
	require.NoError(err)
	require.Equal(uint256.NewInt(34), f.current(t))
}

func TestTransferOwnershipInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	ops := f.view.OpIndex()

	_, err := f.counter.TransferOwnership(ctx, f.owner, codec.EmptyAddress)
	require.ErrorIs(err, ErrInvalidOwner)
	_, err = f.counter.TransferOwnership(ctx, f.owner, f.owner)
	require.ErrorIs(err, ErrNoOpTransfer)

	owner, err := f.counter.Owner(ctx)
	require.NoError(err)
	require.Equal(f.owner, owner)
	require.Equal(ops, f.view.OpIndex())
}

func TestScenarioLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.counter.Increment(ctx, f.owner, uint256.NewInt(50))
	require.NoError(err)
	_, err = f.counter.Decrement(ctx, f.owner, uint256.NewInt(20))
	require.NoError(err)
	_, err = f.counter.Increment(ctx, f.owner, uint256.NewInt(10))
	require.NoError(err)
	require.Equal(uint256.NewInt(40), f.current(t))

	e, err := f.counter.Reset(ctx, f.owner)
	require.NoError(err)
	require.Equal(uint256.NewInt(40), e.OldValue)
	require.True(f.current(t).IsZero())

	_, err = f.counter.Increment(ctx, f.owner, uint256.NewInt(100))
	require.NoError(err)
	require.Equal(uint256.NewInt(100), f.current(t))
}

func TestScenarioHandover(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	p := codectest.NewRandomAddress()

	_, err := f.counter.TransferOwnership(ctx, f.owner, p)
	require.NoError(err)
	_, err = f.counter.Increment(ctx, f.owner, uint256.NewInt(5))
	require.ErrorIs(err, ErrNotOwner)
	_, err = f.counter.Increment(ctx, p, uint256.NewInt(15))
	require.NoError(err)
	require.Equal(uint256.NewInt(15), f.current(t))
}
