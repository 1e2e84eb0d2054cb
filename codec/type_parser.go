// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/countervm/consts"

type Decoder[T any] func(*Packer) (T, error)

// TypeParser maps explicitly assigned type IDs to their decoders.
type TypeParser[T any] struct {
	indexToDecoder map[uint8]Decoder[T]
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]Decoder[T]{},
	}
}

// Register adds [f] as the decoder for [typeID]. Registering the same ID
// twice is an error.
func (p *TypeParser[T]) Register(typeID uint8, f Decoder[T]) error {
	if len(p.indexToDecoder) == int(consts.MaxUint8)+1 {
		return ErrTooManyItems
	}
	if _, ok := p.indexToDecoder[typeID]; ok {
		return ErrDuplicateItem
	}
	p.indexToDecoder[typeID] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(typeID uint8) (Decoder[T], bool) {
	f, ok := p.indexToDecoder[typeID]
	return f, ok
}

// Unmarshal reads the type prefix from [p] and dispatches to the registered
// decoder.
func (p *TypeParser[T]) Unmarshal(r *Packer) (T, error) {
	var empty T
	typeID := r.UnpackByte()
	if err := r.Err(); err != nil {
		return empty, err
	}
	f, ok := p.indexToDecoder[typeID]
	if !ok {
		return empty, ErrUnknownType
	}
	return f(r)
}
