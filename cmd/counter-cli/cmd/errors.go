// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidArgs       = errors.New("invalid args")
	ErrMissingSubcommand = errors.New("must specify a subcommand")
	ErrMissingCounter    = errors.New("no counter address: set COUNTER_ADDR, pass --counter, or deploy first")
	ErrInvalidKeyType    = errors.New("invalid key type")
)
