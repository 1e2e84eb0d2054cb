// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestUnixRMilli(t *testing.T) {
	require := require.New(t)
	require.Equal(int64(1_000), UnixRMilli(1_999, 0))
	require.Equal(int64(61_000), UnixRMilli(1_500, 60_000))
	require.Positive(UnixRMilli(-1, 0))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *uint256.Int
		wantErr bool
	}{
		{name: "zero", in: "0", want: uint256.NewInt(0)},
		{name: "small", in: " 42 ", want: uint256.NewInt(42)},
		{
			name: "max",
			in:   "115792089237316195423570985008687907853269984665640564039457584007913129639935",
			want: new(uint256.Int).SetAllOne(),
		},
		{
			name:    "overflow",
			in:      "115792089237316195423570985008687907853269984665640564039457584007913129639936",
			wantErr: true,
		},
		{name: "negative", in: "-1", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "12a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			v, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(err, ErrInvalidAmount)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, v)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	require := require.New(t)
	require.Equal("0", FormatAmount(nil))
	require.Equal("17", FormatAmount(uint256.NewInt(17)))
}

func TestToID(t *testing.T) {
	require := require.New(t)
	require.Equal(ToID([]byte("a")), ToID([]byte("a")))
	require.NotEqual(ToID([]byte("a")), ToID([]byte("b")))
}
