// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import "errors"

var (
	// ErrInvalidPrivateKey is returned for keys of the wrong length or
	// encoding.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrInvalidSignature is returned when a signature does not verify
	// against the signer and message.
	ErrInvalidSignature = errors.New("invalid signature")
)
