// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/countervm/cli/prompt"
	"github.com/ava-labs/countervm/utils"
)

func (h *Handler) ListKeys() error {
	keys, err := h.GetKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil
	}
	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(keys))
	for i, key := range keys {
		utils.Outf("%d) {{cyan}}address:{{/}} %s\n", i, h.c.Address(key.Address))
	}
	return nil
}

func (h *Handler) SetKey() error {
	keys, err := h.GetKeys()
	if err != nil {
		return err
	}
	if err := h.ListKeys(); err != nil || len(keys) == 0 {
		return err
	}

	// Select key
	keyIndex, err := prompt.Choice("set default key", len(keys))
	if err != nil {
		return err
	}
	key := keys[keyIndex]
	return h.StoreDefaultKey(key.Address)
}
