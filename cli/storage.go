// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/utils"
)

const (
	defaultPrefix = 0x0
	keyPrefix     = 0x1

	defaultKeyKey     = "key"
	defaultCounterKey = "counter"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	return h.db.Put(k, value)
}

func (h *Handler) GetDefault(key string) ([]byte, error) {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) StoreKey(priv *auth.PrivateKey) error {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], priv.Address[:])
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	return h.db.Put(k, priv.Bytes)
}

// GetKey returns the stored key for [addr], or nil if there is none.
func (h *Handler) GetKey(addr codec.Address) (*auth.PrivateKey, error) {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.PrivateKey{Address: addr, Bytes: v}, nil
}

func (h *Handler) GetKeys() ([]*auth.PrivateKey, error) {
	iter := h.db.NewIteratorWithPrefix([]byte{keyPrefix})
	defer iter.Release()

	privateKeys := []*auth.PrivateKey{}
	for iter.Next() {
		// It is safe to use these bytes directly because the database copies the
		// iterator value for us.
		addr, err := codec.ToAddress(iter.Key()[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		privateKeys = append(privateKeys, &auth.PrivateKey{
			Address: addr,
			Bytes:   iter.Value(),
		})
	}
	return privateKeys, iter.Error()
}

func (h *Handler) StoreDefaultKey(addr codec.Address) error {
	return h.StoreDefault(defaultKeyKey, addr[:])
}

func (h *Handler) GetDefaultKey(log bool) (*auth.PrivateKey, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNoKeys
	}
	addr, err := codec.ToAddress(v)
	if err != nil {
		return nil, err
	}
	priv, err := h.GetKey(addr)
	if err != nil {
		return nil, err
	}
	if priv == nil {
		return nil, ErrNoKeys
	}
	if log {
		utils.Outf("{{yellow}}address:{{/}} %s\n", h.c.Address(addr))
	}
	return priv, nil
}

func (h *Handler) StoreDefaultCounter(contract codec.Address) error {
	return h.StoreDefault(defaultCounterKey, contract[:])
}

func (h *Handler) GetDefaultCounter() (codec.Address, error) {
	v, err := h.GetDefault(defaultCounterKey)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if len(v) == 0 {
		return codec.EmptyAddress, ErrNoCounter
	}
	return codec.ToAddress(v)
}

func (h *Handler) CloseDatabase() error {
	if h.db == nil {
		return nil
	}
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("unable to close database: %w", err)
	}
	// Allow DB to be closed multiple times
	h.db = nil
	return nil
}
