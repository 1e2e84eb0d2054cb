// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/utils"
)

const ed25519Key = "ed25519"

func checkKeyType(k string) error {
	switch k {
	case ed25519Key:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidKeyType, k)
	}
}

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use: "generate [ed25519]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return checkKeyType(args[0])
	},
	RunE: func(*cobra.Command, []string) error {
		priv, err := auth.GenerateED25519PrivateKey()
		if err != nil {
			return err
		}
		if err := handler.h.StoreKey(priv); err != nil {
			return err
		}
		if err := handler.h.StoreDefaultKey(priv.Address); err != nil {
			return err
		}
		utils.Outf(
			"{{green}}created address:{{/}} %s\n",
			codec.MustAddressBech32(consts.HRP, priv.Address),
		)
		return nil
	},
}

var importKeyCmd = &cobra.Command{
	Use: "import [ed25519] [path or hex]",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		return checkKeyType(args[0])
	},
	RunE: func(_ *cobra.Command, args []string) error {
		pk, err := ed25519.HexToKey(args[1])
		if err != nil {
			pk, err = ed25519.LoadKey(args[1])
		}
		if err != nil {
			return err
		}
		priv, err := auth.LoadED25519PrivateKey(pk[:])
		if err != nil {
			return err
		}
		if err := handler.h.StoreKey(priv); err != nil {
			return err
		}
		if err := handler.h.StoreDefaultKey(priv.Address); err != nil {
			return err
		}
		utils.Outf(
			"{{green}}imported address:{{/}} %s\n",
			codec.MustAddressBech32(consts.HRP, priv.Address),
		)
		return nil
	},
}

var listKeyCmd = &cobra.Command{
	Use: "list",
	RunE: func(*cobra.Command, []string) error {
		return handler.h.ListKeys()
	},
}

var setKeyCmd = &cobra.Command{
	Use: "set",
	RunE: func(*cobra.Command, []string) error {
		return handler.h.SetKey()
	},
}

var addressKeyCmd = &cobra.Command{
	Use: "address",
	RunE: func(*cobra.Command, []string) error {
		_, err := handler.h.GetDefaultKey(true)
		return err
	},
}
