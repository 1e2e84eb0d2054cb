// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/cli/prompt"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/utils"
)

// stepArg parses the optional step argument, prompting when it is absent.
func stepArg(args []string, label string) (*uint256.Int, error) {
	if len(args) == 0 {
		return prompt.Amount(label)
	}
	return utils.ParseAmount(args[0])
}

func printState(ctx context.Context, contract codec.Address) error {
	v, err := handler.VM()
	if err != nil {
		return err
	}
	owner, err := v.Owner(ctx, contract)
	if err != nil {
		return err
	}
	value, err := v.Current(ctx, contract)
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}owner:{{/}} %s\n", codec.MustAddressBech32(consts.HRP, owner))
	utils.Outf("{{cyan}}value:{{/}} %s\n", utils.FormatAmount(value))
	return nil
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a new counter owned by the default key",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		tx, _, err := handler.Submit(ctx, &actions.Deploy{
			Salt: uint64(time.Now().UnixNano()),
		})
		if err != nil {
			return err
		}
		contract := actions.CounterAddress(tx.ID())
		if err := handler.h.StoreDefaultCounter(contract); err != nil {
			return err
		}
		addr := codec.MustAddressBech32(consts.HRP, contract)
		utils.Outf("{{green}}deployed counter:{{/}} %s\n", addr)
		if err := printState(ctx, contract); err != nil {
			return err
		}
		utils.Outf("{{yellow}}set COUNTER_ADDR=%s in your .env file to use it from other databases{{/}}\n", addr)
		return nil
	},
}

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Print the owner of the counter",
	RunE: func(*cobra.Command, []string) error {
		contract, err := handler.Counter()
		if err != nil {
			return err
		}
		v, err := handler.VM()
		if err != nil {
			return err
		}
		owner, err := v.Owner(context.Background(), contract)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}owner:{{/}} %s\n", codec.MustAddressBech32(consts.HRP, owner))
		return nil
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the value of the counter",
	RunE: func(*cobra.Command, []string) error {
		contract, err := handler.Counter()
		if err != nil {
			return err
		}
		v, err := handler.VM()
		if err != nil {
			return err
		}
		value, err := v.Current(context.Background(), contract)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}value:{{/}} %s\n", utils.FormatAmount(value))
		return nil
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment [step]",
	Short: "Add step to the counter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		contract, err := handler.Counter()
		if err != nil {
			return err
		}
		step, err := stepArg(args, "step")
		if err != nil {
			return err
		}
		ctx := context.Background()
		if _, _, err := handler.Submit(ctx, &actions.Increment{Counter: contract, Step: step}); err != nil {
			return err
		}
		return printState(ctx, contract)
	},
}

var decrementCmd = &cobra.Command{
	Use:   "decrement [step]",
	Short: "Subtract step from the counter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		contract, err := handler.Counter()
		if err != nil {
			return err
		}
		step, err := stepArg(args, "step")
		if err != nil {
			return err
		}
		ctx := context.Background()
		if _, _, err := handler.Submit(ctx, &actions.Decrement{Counter: contract, Step: step}); err != nil {
			return err
		}
		return printState(ctx, contract)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set the counter back to zero",
	RunE: func(*cobra.Command, []string) error {
		contract, err := handler.Counter()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if _, _, err := handler.Submit(ctx, &actions.Reset{Counter: contract}); err != nil {
			return err
		}
		return printState(ctx, contract)
	},
}

var transferOwnershipCmd = &cobra.Command{
	Use:   "transfer-ownership [address]",
	Short: "Hand the counter to a new owner",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		contract, err := handler.Counter()
		if err != nil {
			return err
		}
		var newOwner codec.Address
		if len(args) == 1 {
			newOwner, err = codec.ParseAddressBech32(consts.HRP, args[0])
		} else {
			newOwner, err = prompt.Address("new owner")
		}
		if err != nil {
			return err
		}
		if !skipConfirm {
			cont, err := prompt.Bool("transfer ownership? the current key loses all control")
			if err != nil {
				return err
			}
			if !cont {
				utils.Outf("{{red}}exiting...{{/}}\n")
				return nil
			}
		}
		ctx := context.Background()
		if _, _, err := handler.Submit(ctx, &actions.TransferOwnership{
			Counter:  contract,
			NewOwner: newOwner,
		}); err != nil {
			return err
		}
		return printState(ctx, contract)
	},
}
