// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

// Result is the outcome of executing a transaction.
//
// A failed transaction carries the error message in [Error], no [Event],
// and the [Height] the ledger was at when it ran.
type Result struct {
	Success bool
	Error   []byte

	// Event is the encoded event the action emitted on success.
	Event []byte

	// Height is the ledger height after the transaction.
	Height uint64
}

func (r *Result) Size() int {
	return consts.BoolLen + codec.BytesLen(r.Error) + codec.BytesLen(r.Event) + consts.Uint64Len
}

func (r *Result) Marshal(p *codec.Packer) {
	p.PackBool(r.Success)
	p.PackBytes(r.Error)
	p.PackBytes(r.Event)
	p.PackUint64(r.Height)
}

func (r *Result) Bytes() ([]byte, error) {
	p := codec.NewWriter(r.Size(), consts.MaxInt)
	r.Marshal(p)
	return p.Bytes(), p.Err()
}

func UnmarshalResult(b []byte) (*Result, error) {
	p := codec.NewReader(b, consts.MaxInt)
	result := &Result{
		Success: p.UnpackBool(),
	}
	p.UnpackBytes(consts.MaxInt, false, &result.Error)
	p.UnpackBytes(consts.MaxInt, false, &result.Event)
	result.Height = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return result, nil
}
