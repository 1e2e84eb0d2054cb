// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/pebble"
)

// Controller supplies the keystore location and the address format shown
// to users.
type Controller interface {
	DatabasePath() string
	Address(codec.Address) string
	ParseAddress(string) (codec.Address, error)
}

// Handler owns the CLI's local keystore: signing keys, the default key, and
// the default counter.
type Handler struct {
	c  Controller
	db database.Database
}

func New(c Controller) (*Handler, error) {
	db, _, err := pebble.New(c.DatabasePath(), pebble.NewDefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Handler{c: c, db: db}, nil
}

// Address formats [addr] for display.
func (h *Handler) Address(addr codec.Address) string {
	return h.c.Address(addr)
}
