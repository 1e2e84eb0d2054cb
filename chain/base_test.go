// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

func TestBaseExecute(t *testing.T) {
	chainID := ids.GenerateTestID()
	rules := Rules{ChainID: chainID, ValidityWindow: 60_000}
	const now = 1_000_000

	tests := []struct {
		name string
		base Base
		err  error
	}{
		{name: "valid", base: Base{Timestamp: now + 10_000, ChainID: chainID}},
		{name: "at now", base: Base{Timestamp: now, ChainID: chainID}},
		{name: "at window end", base: Base{Timestamp: now + 60_000, ChainID: chainID}},
		{name: "misaligned", base: Base{Timestamp: now + 1, ChainID: chainID}, err: ErrMisalignedTime},
		{name: "expired", base: Base{Timestamp: now - 1_000, ChainID: chainID}, err: ErrTimestampTooLate},
		{name: "too far out", base: Base{Timestamp: now + 61_000, ChainID: chainID}, err: ErrTimestampTooEarly},
		{name: "wrong chain", base: Base{Timestamp: now, ChainID: ids.GenerateTestID()}, err: ErrInvalidChainID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.base.Execute(rules, now), tt.err)
		})
	}
}

func TestBaseMarshal(t *testing.T) {
	require := require.New(t)
	base := &Base{Timestamp: 5_000, ChainID: ids.GenerateTestID()}

	p := codec.NewWriter(base.Size(), consts.NetworkSizeLimit)
	base.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), BaseSize)

	parsed, err := UnmarshalBase(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(base, parsed)

	p = codec.NewWriter(BaseSize, consts.NetworkSizeLimit)
	(&Base{Timestamp: 5_001, ChainID: base.ChainID}).Marshal(p)
	_, err = UnmarshalBase(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.ErrorIs(err, ErrMisalignedTime)
}
