// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing
	ErrInvalidObject = errors.New("invalid object")
	ErrInvalidActor  = errors.New("invalid actor")

	// Verify
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrInvalidChainID    = errors.New("invalid chain ID")
	ErrMisalignedTime    = errors.New("misaligned time")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrDuplicateTx       = errors.New("duplicate transaction")

	// Execution
	ErrMissingEvent = errors.New("action produced no event")
)
