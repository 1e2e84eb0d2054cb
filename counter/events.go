// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const (
	OwnershipTransferredID uint8 = iota
	IncrementedID
	DecrementedID
	ResetID
)

const maxEventSize = consts.ByteLen + 2*codec.AddressLen + consts.Uint256Len

var (
	_ codec.Typed = (*OwnershipTransferred)(nil)
	_ codec.Typed = (*Incremented)(nil)
	_ codec.Typed = (*Decremented)(nil)
	_ codec.Typed = (*Reset)(nil)
)

var eventParser = codec.NewTypeParser[codec.Typed]()

func init() {
	for id, f := range map[uint8]codec.Decoder[codec.Typed]{
		OwnershipTransferredID: unmarshalOwnershipTransferred,
		IncrementedID:          unmarshalIncremented,
		DecrementedID:          unmarshalDecremented,
		ResetID:                unmarshalReset,
	} {
		if err := eventParser.Register(id, f); err != nil {
			panic(err)
		}
	}
}

// UnmarshalEvent decodes any counter event produced by [Bytes].
func UnmarshalEvent(b []byte) (codec.Typed, error) {
	p := codec.NewReader(b, maxEventSize)
	e, err := eventParser.Unmarshal(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrInvalidSize
	}
	return e, nil
}

func marshal(e codec.Typed, size int, f func(*codec.Packer)) []byte {
	p := codec.NewWriter(consts.ByteLen+size, consts.ByteLen+size)
	p.PackByte(e.GetTypeID())
	f(p)
	return p.Bytes()
}

// OwnershipTransferred is emitted at deployment (with an empty
// [PreviousOwner]) and on every successful ownership transfer.
type OwnershipTransferred struct {
	PreviousOwner codec.Address `json:"previousOwner"`
	NewOwner      codec.Address `json:"newOwner"`
}

func (*OwnershipTransferred) GetTypeID() uint8 {
	return OwnershipTransferredID
}

func (e *OwnershipTransferred) Bytes() []byte {
	return marshal(e, 2*codec.AddressLen, func(p *codec.Packer) {
		p.PackAddress(e.PreviousOwner)
		p.PackAddress(e.NewOwner)
	})
}

func unmarshalOwnershipTransferred(p *codec.Packer) (codec.Typed, error) {
	var e OwnershipTransferred
	p.UnpackAddress(false, &e.PreviousOwner)
	p.UnpackAddress(true, &e.NewOwner)
	return &e, p.Err()
}

type Incremented struct {
	Caller   codec.Address `json:"caller"`
	NewValue *uint256.Int  `json:"newValue"`
}

func (*Incremented) GetTypeID() uint8 {
	return IncrementedID
}

func (e *Incremented) Bytes() []byte {
	return marshal(e, codec.AddressLen+consts.Uint256Len, func(p *codec.Packer) {
		p.PackAddress(e.Caller)
		p.PackUint256(e.NewValue)
	})
}

func unmarshalIncremented(p *codec.Packer) (codec.Typed, error) {
	var e Incremented
	p.UnpackAddress(true, &e.Caller)
	e.NewValue = p.UnpackUint256(false)
	return &e, p.Err()
}

type Decremented struct {
	Caller   codec.Address `json:"caller"`
	NewValue *uint256.Int  `json:"newValue"`
}

func (*Decremented) GetTypeID() uint8 {
	return DecrementedID
}

func (e *Decremented) Bytes() []byte {
	return marshal(e, codec.AddressLen+consts.Uint256Len, func(p *codec.Packer) {
		p.PackAddress(e.Caller)
		p.PackUint256(e.NewValue)
	})
}

func unmarshalDecremented(p *codec.Packer) (codec.Typed, error) {
	var e Decremented
	p.UnpackAddress(true, &e.Caller)
	e.NewValue = p.UnpackUint256(false)
	return &e, p.Err()
}

// Reset carries the value the counter held before it was cleared.
type Reset struct {
	OldValue *uint256.Int `json:"oldValue"`
}

func (*Reset) GetTypeID() uint8 {
	return ResetID
}

func (e *Reset) Bytes() []byte {
	return marshal(e, consts.Uint256Len, func(p *codec.Packer) {
		p.PackUint256(e.OldValue)
	})
}

func unmarshalReset(p *codec.Packer) (codec.Typed, error) {
	var e Reset
	e.OldValue = p.UnpackUint256(false)
	return &e, p.Err()
}
