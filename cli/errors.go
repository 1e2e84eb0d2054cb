// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrDuplicate  = errors.New("duplicate")
	ErrNoKeys     = errors.New("no available keys")
	ErrNoCounter  = errors.New("no default counter")
	ErrInvalidKey = errors.New("invalid stored key")
)
