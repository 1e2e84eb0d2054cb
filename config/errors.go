// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidValidityWindow = errors.New("invalid validity window")
	ErrMissingDatabasePath   = errors.New("missing database path")
	ErrInvalidKey            = errors.New("config keys must be strings")
)
