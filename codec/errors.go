// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrFieldNotPopulated = errors.New("field is not populated")
	ErrInvalidSize       = errors.New("invalid size")
	ErrIncorrectHRP      = errors.New("incorrect hrp")

	// TypeParser
	ErrTooManyItems  = errors.New("too many items")
	ErrDuplicateItem = errors.New("duplicate item")
	ErrUnknownType   = errors.New("unknown type")
)
