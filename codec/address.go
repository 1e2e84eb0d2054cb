// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const AddressLen = 33

// Address represents the 33 byte address of a principal or a deployed
// counter. The first byte is the type ID of whatever produced it.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// ToAddress returns an Address from [b] if it is exactly [AddressLen] long.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressBech32 returns the bech32 encoding of [p] with human readable
// part [hrp].
func AddressBech32(hrp string, p Address) (string, error) {
	conv, err := bech32.ConvertBits(p[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, conv)
}

// MustAddressBech32 is used for returning an encoded address when it is
// known that the encoding will not fail.
func MustAddressBech32(hrp string, p Address) string {
	addr, err := AddressBech32(hrp, p)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a bech32 encoded address string and extracts
// its [Address]. If there is an error reading the address or the hrp
// value is not valid, ParseAddressBech32 returns an error.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, data, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	p, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return EmptyAddress, err
	}
	return ToAddress(p)
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	b, err := LoadHex(string(input), AddressLen)
	if err != nil {
		return err
	}
	copy(a[:], b)
	return nil
}
