// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

// Note: Registry will error during initialization if a duplicate ID is assigned. We explicitly assign IDs to avoid accidental remapping.
const (
	ED25519ID = consts.ED25519ID

	ED25519Key = "ed25519"
)

// Registry returns the decoders for every supported [chain.Auth].
func Registry() (*codec.TypeParser[chain.Auth], error) {
	r := codec.NewTypeParser[chain.Auth]()
	if err := r.Register(ED25519ID, UnmarshalED25519); err != nil {
		return nil, err
	}
	return r, nil
}
