// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ToHex encodes [b] as lowercase hex without a prefix.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// LoadHex decodes [s], with or without a 0x prefix. If [expectedSize] is not
// -1 the decoded value must be exactly that long.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}
