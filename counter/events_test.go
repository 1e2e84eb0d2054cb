// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/codectest"
)

func TestUnmarshalEvent(t *testing.T) {
	a := codectest.NewRandomAddress()
	b := codectest.NewRandomAddress()
	for _, e := range []codec.Typed{
		&OwnershipTransferred{PreviousOwner: codec.EmptyAddress, NewOwner: a},
		&OwnershipTransferred{PreviousOwner: a, NewOwner: b},
		&Incremented{Caller: a, NewValue: new(uint256.Int).SetAllOne()},
		&Decremented{Caller: b, NewValue: uint256.NewInt(0)},
		&Reset{OldValue: uint256.NewInt(40)},
	} {
		got, err := UnmarshalEvent(e.Bytes())
		require.NoError(t, err)
		require.Equal(t, e, got)
	}
}

func TestUnmarshalEventInvalid(t *testing.T) {
	require := require.New(t)

	_, err := UnmarshalEvent([]byte{0xff})
	require.ErrorIs(err, codec.ErrUnknownType)

	_, err = UnmarshalEvent(nil)
	require.Error(err)

	b := (&Reset{OldValue: uint256.NewInt(1)}).Bytes()
	_, err = UnmarshalEvent(append(b, 0))
	require.Error(err)

	// A transfer to nobody is never emitted.
	_, err = UnmarshalEvent((&OwnershipTransferred{}).Bytes())
	require.ErrorIs(err, codec.ErrFieldNotPopulated)
}

func TestUnmarshalEventTruncated(t *testing.T) {
	a := codectest.NewRandomAddress()
	b := codectest.NewRandomAddress()
	for _, e := range []codec.Typed{
		&OwnershipTransferred{PreviousOwner: a, NewOwner: b},
		&Incremented{Caller: a, NewValue: uint256.NewInt(7)},
		&Decremented{Caller: b, NewValue: uint256.NewInt(3)},
		&Reset{OldValue: uint256.NewInt(40)},
	} {
		encoded := e.Bytes()
		for n := 1; n < len(encoded); n++ {
			require.NotPanics(t, func() {
				_, err := UnmarshalEvent(encoded[:n])
				require.Error(t, err, "event %d cut at %d", e.GetTypeID(), n)
			})
		}
	}

	require.NotPanics(t, func() {
		_, err := UnmarshalEvent([]byte{ResetID, 0, 0})
		require.Error(t, err)
	})
}

func TestKind(t *testing.T) {
	require := require.New(t)
	require.Empty(Kind(nil))
	require.Empty(Kind(errors.New("boom")))
	require.Equal("NotOwner", Kind(ErrNotOwner))
	require.Equal("Underflow", Kind(fmt.Errorf("tx failed: %w", ErrUnderflow)))
	require.Equal("NoOpTransfer", Kind(errors.New(ErrNoOpTransfer.Error())))
	require.Equal("InvalidStep", Kind(errors.New("execution reverted: "+ErrInvalidStep.Error())))
}

func TestKindMessagesAreDistinct(t *testing.T) {
	require := require.New(t)
	for _, k := range kinds {
		require.Equal(k.name, Kind(errors.New(k.err.Error())))
		for _, other := range kinds {
			if other.name != k.name {
				require.NotContains(k.err.Error(), other.err.Error())
			}
		}
	}
}
