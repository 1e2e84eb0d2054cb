// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package counter implements a single-owner counter over [state.Mutable].
//
// Every mutating operation loads the owner and value, checks the caller,
// then its arguments, then the arithmetic, and writes only once all checks
// pass. A failed call leaves state untouched and produces no event.
package counter

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

// StateKeys returns the keys (and permissions) every counter operation on
// [contract] may touch.
func StateKeys(contract codec.Address) state.Keys {
	return state.Keys{
		string(storage.OwnerKey(contract)): state.All,
		string(storage.ValueKey(contract)): state.All,
	}
}

// Deploy creates a counter at [contract] owned by [deployer] with value 0.
func Deploy(
	ctx context.Context,
	mu state.Mutable,
	contract codec.Address,
	deployer codec.Address,
) (*OwnershipTransferred, error) {
	if deployer == codec.EmptyAddress {
		return nil, ErrInvalidOwner
	}
	_, exists, err := storage.GetOwner(ctx, mu, contract)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyDeployed
	}
	if err := storage.SetOwner(ctx, mu, contract, deployer); err != nil {
		return nil, err
	}
	if err := storage.SetValue(ctx, mu, contract, new(uint256.Int)); err != nil {
		return nil, err
	}
	return &OwnershipTransferred{
		PreviousOwner: codec.EmptyAddress,
		NewOwner:      deployer,
	}, nil
}

// Counter is a handle on a deployed counter. It holds no state of its own.
type Counter struct {
	mu       state.Mutable
	contract codec.Address
}

// New returns a handle on the counter at [contract].
func New(mu state.Mutable, contract codec.Address) *Counter {
	return &Counter{mu: mu, contract: contract}
}

// Address returns the counter's contract address.
func (c *Counter) Address() codec.Address {
	return c.contract
}

// Owner returns the current owner.
func (c *Counter) Owner(ctx context.Context) (codec.Address, error) {
	return Owner(ctx, c.mu, c.contract)
}

// Current returns the current value.
func (c *Counter) Current(ctx context.Context) (*uint256.Int, error) {
	return Current(ctx, c.mu, c.contract)
}

func (c *Counter) load(ctx context.Context) (codec.Address, *uint256.Int, error) {
	return load(ctx, c.mu, c.contract)
}

// Owner reads the owner of the counter at [contract].
func Owner(ctx context.Context, im state.Immutable, contract codec.Address) (codec.Address, error) {
	owner, exists, err := storage.GetOwner(ctx, im, contract)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if !exists {
		return codec.EmptyAddress, ErrNotDeployed
	}
	return owner, nil
}

// Current reads the value of the counter at [contract].
func Current(ctx context.Context, im state.Immutable, contract codec.Address) (*uint256.Int, error) {
	_, value, err := load(ctx, im, contract)
	return value, err
}

func load(ctx context.Context, im state.Immutable, contract codec.Address) (codec.Address, *uint256.Int, error) {
	owner, err := Owner(ctx, im, contract)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	value, err := storage.GetValue(ctx, im, contract)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	return owner, value, nil
}

// authorize loads the counter and fails with [ErrNotOwner] unless [caller]
// owns it.
func (c *Counter) authorize(ctx context.Context, caller codec.Address) (codec.Address, *uint256.Int, error) {
	owner, value, err := c.load(ctx)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	if caller != owner {
		return codec.EmptyAddress, nil, ErrNotOwner
	}
	return owner, value, nil
}

func (c *Counter) Increment(ctx context.Context, caller codec.Address, step *uint256.Int) (*Incremented, error) {
	_, value, err := c.authorize(ctx, caller)
	if err != nil {
		return nil, err
	}
	if step == nil || step.IsZero() {
		return nil, ErrInvalidStep
	}
	next, overflow := new(uint256.Int).AddOverflow(value, step)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	if err := storage.SetValue(ctx, c.mu, c.contract, next); err != nil {
		return nil, err
	}
	return &Incremented{Caller: caller, NewValue: next}, nil
}

// Decrement subtracts [step] from the value. It never clamps: a step larger
// than the value fails with [ErrUnderflow].
func (c *Counter) Decrement(ctx context.Context, caller codec.Address, step *uint256.Int) (*Decremented, error) {
	_, value, err := c.authorize(ctx, caller)
	if err != nil {
		return nil, err
	}
	if step == nil || step.IsZero() {
		return nil, ErrInvalidStep
	}
	if step.Gt(value) {
		return nil, ErrUnderflow
	}
	next := new(uint256.Int).Sub(value, step)
	if err := storage.SetValue(ctx, c.mu, c.contract, next); err != nil {
		return nil, err
	}
	return &Decremented{Caller: caller, NewValue: next}, nil
}

func (c *Counter) Reset(ctx context.Context, caller codec.Address) (*Reset, error) {
	_, value, err := c.authorize(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := storage.SetValue(ctx, c.mu, c.contract, new(uint256.Int)); err != nil {
		return nil, err
	}
	return &Reset{OldValue: value}, nil
}

func (c *Counter) TransferOwnership(
	ctx context.Context,
	caller codec.Address,
	newOwner codec.Address,
) (*OwnershipTransferred, error) {
	owner, _, err := c.authorize(ctx, caller)
	if err != nil {
		return nil, err
	}
	if newOwner == codec.EmptyAddress {
		return nil, ErrInvalidOwner
	}
	if newOwner == owner {
		return nil, ErrNoOpTransfer
	}
	if err := storage.SetOwner(ctx, c.mu, c.contract, newOwner); err != nil {
		return nil, err
	}
	return &OwnershipTransferred{PreviousOwner: owner, NewOwner: newOwner}, nil
}
