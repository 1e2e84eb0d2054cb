// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"errors"
	"strings"
)

var (
	ErrNotOwner           = errors.New("PrivateCounter: caller is not the owner")
	ErrInvalidStep        = errors.New("PrivateCounter: step must be greater than zero")
	ErrUnderflow          = errors.New("PrivateCounter: cannot decrement below zero")
	ErrArithmeticOverflow = errors.New("PrivateCounter: arithmetic overflow")
	ErrInvalidOwner       = errors.New("PrivateCounter: new owner is the zero address")
	ErrNoOpTransfer       = errors.New("PrivateCounter: new owner is the same as current owner")

	ErrNotDeployed     = errors.New("counter not deployed")
	ErrAlreadyDeployed = errors.New("counter already deployed")
)

type kind struct {
	name string
	err  error
}

// Order matters: the message fallback in [Kind] returns the first match.
var kinds = []kind{
	{"NotOwner", ErrNotOwner},
	{"InvalidStep", ErrInvalidStep},
	{"Underflow", ErrUnderflow},
	{"ArithmeticOverflow", ErrArithmeticOverflow},
	{"InvalidOwner", ErrInvalidOwner},
	{"NoOpTransfer", ErrNoOpTransfer},
	{"NotDeployed", ErrNotDeployed},
	{"AlreadyDeployed", ErrAlreadyDeployed},
}

// Kind returns the name of the failure [err] represents, or "" if it is not
// a counter failure. Errors that only survived as text (for example, a
// failed transaction result) are matched on their message.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	msg := err.Error()
	for _, k := range kinds {
		if strings.Contains(msg, k.err.Error()) {
			return k.name
		}
	}
	return ""
}
