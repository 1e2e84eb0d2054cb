// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/utils"
)

func TestParsePositive(t *testing.T) {
	tests := []struct {
		input    string
		expected *uint256.Int
		err      error
	}{
		{input: "5", expected: uint256.NewInt(5)},
		{input: " 42 ", expected: uint256.NewInt(42)},
		{input: "", err: ErrInputEmpty},
		{input: "0", err: ErrZeroAmount},
		{input: "-1", err: utils.ErrInvalidAmount},
		{input: "abc", err: utils.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)
			v, err := parsePositive(tt.input)
			require.ErrorIs(err, tt.err)
			if tt.err == nil {
				require.Equal(tt.expected, v)
			}
		})
	}
}
