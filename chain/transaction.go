// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/utils"
)

type Transaction struct {
	Base *Base `json:"base"`

	Action Action `json:"action"`
	Auth   Auth   `json:"auth"`

	digest    []byte
	bytes     []byte
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, action Action) *Transaction {
	return &Transaction{
		Base:   base,
		Action: action,
	}
}

// Digest is the message an [AuthFactory] signs.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.ByteLen + t.Action.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	return p.Bytes(), p.Err()
}

// Sign signs the transaction with [factory] and returns the transaction as
// parsed back from its own bytes, so the result is fully initialized.
func (t *Transaction) Sign(factory AuthFactory, parser *Parser) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	p := codec.NewWriter(len(msg)+consts.ByteLen+auth.Size(), consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return UnmarshalTx(p.Bytes(), parser)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return len(t.bytes) }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

func (t *Transaction) Actor() codec.Address { return t.Auth.Actor() }

// Verify checks the signature over the transaction digest.
func (t *Transaction) Verify(ctx context.Context) error {
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	if err := t.Auth.Verify(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return nil
}

// StateKeys returns every key executing the transaction may touch: the keys
// of its action plus the bookkeeping keys the processor writes on success.
func (t *Transaction) StateKeys() state.Keys {
	if t.stateKeys != nil {
		return t.stateKeys
	}
	stateKeys := make(state.Keys)
	stateKeys.Union(t.Action.StateKeys(t.Auth.Actor(), t.id))
	stateKeys.Add(string(storage.HeightKey()), state.All)
	stateKeys.Add(string(storage.TxKey(t.id)), state.All)
	t.stateKeys = stateKeys
	return stateKeys
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func UnmarshalTx(b []byte, parser *Parser) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	action, err := parser.Actions().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	digest := p.Offset()
	auth, err := parser.Auths().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if actorType, authType := auth.Actor()[0], auth.GetTypeID(); actorType != authType {
		return nil, fmt.Errorf("%w: actorType (%d) did not match authType (%d)", ErrInvalidActor, actorType, authType)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}

	var tx Transaction
	tx.Base = base
	tx.Action = action
	tx.Auth = auth
	codecBytes := p.Bytes()
	tx.digest = codecBytes[:digest]
	tx.bytes = codecBytes
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}
