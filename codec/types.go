// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/countervm/consts"

// Typed is implemented by anything that is serialized behind a one byte
// type prefix (actions, auth, events).
type Typed interface {
	GetTypeID() uint8
	Bytes() []byte
}

// BytesLen is the packed size of [b], including its length prefix.
func BytesLen(b []byte) int {
	return consts.IntLen + len(b)
}
