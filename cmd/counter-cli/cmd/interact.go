// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/event"
	"github.com/ava-labs/countervm/utils"
	"github.com/ava-labs/countervm/vm"
)

var interactCmd = &cobra.Command{
	Use:   "interact",
	Short: "Run a scripted session against the counter",
	RunE: func(*cobra.Command, []string) error {
		return interact(context.Background())
	},
}

func interact(ctx context.Context) error {
	priv, _, err := handler.DefaultActor()
	if err != nil {
		return err
	}
	contract, err := handler.Counter()
	if err != nil {
		return err
	}
	v, err := handler.VM()
	if err != nil {
		return err
	}

	owner, err := v.Owner(ctx, contract)
	if err != nil {
		return err
	}
	isOwner := owner == priv.Address
	utils.Outf("{{cyan}}owner:{{/}} %s\n", codec.MustAddressBech32(consts.HRP, owner))
	utils.Outf("{{cyan}}key is owner:{{/}} %t\n", isOwner)

	value, err := v.Current(ctx, contract)
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}value:{{/}} %s\n", utils.FormatAmount(value))

	if !isOwner {
		utils.Outf("{{yellow}}skipping owner-only operations: the default key is not the owner{{/}}\n")
		utils.Outf("{{yellow}}use the owner key or have the owner transfer ownership{{/}}\n")
		return nil
	}

	step := func(label string, action chain.Action) error {
		utils.Outf("{{yellow}}%s{{/}}\n", label)
		if _, _, err := handler.Submit(ctx, action); err != nil {
			return err
		}
		value, err := v.Current(ctx, contract)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}value:{{/}} %s\n", utils.FormatAmount(value))
		return nil
	}
	if err := step("incrementing by 5", &actions.Increment{Counter: contract, Step: uint256.NewInt(5)}); err != nil {
		return err
	}
	if err := step("incrementing by 3", &actions.Increment{Counter: contract, Step: uint256.NewInt(3)}); err != nil {
		return err
	}
	if err := step("decrementing by 2", &actions.Decrement{Counter: contract, Step: uint256.NewInt(2)}); err != nil {
		return err
	}

	unsubscribe := v.Subscribe(event.SubscriptionFunc[*vm.Accepted]{
		AcceptF: func(_ context.Context, a *vm.Accepted) error {
			printEvent(contract, a)
			return nil
		},
	})
	if err := step("incrementing by 10", &actions.Increment{Counter: contract, Step: uint256.NewInt(10)}); err != nil {
		_ = unsubscribe()
		return err
	}
	if err := unsubscribe(); err != nil {
		return err
	}
	utils.Outf("{{green}}session complete{{/}}\n")
	return nil
}

// printEvent prints events for [contract] only.
func printEvent(contract codec.Address, a *vm.Accepted) {
	switch e := a.Event.(type) {
	case *counter.Incremented:
		if target(a.Action) != contract {
			return
		}
		utils.Outf("{{green}}event:{{/}} incremented to %s by %s\n",
			utils.FormatAmount(e.NewValue), codec.MustAddressBech32(consts.HRP, e.Caller))
	case *counter.Decremented:
		if target(a.Action) != contract {
			return
		}
		utils.Outf("{{green}}event:{{/}} decremented to %s by %s\n",
			utils.FormatAmount(e.NewValue), codec.MustAddressBech32(consts.HRP, e.Caller))
	case *counter.Reset:
		if target(a.Action) != contract {
			return
		}
		utils.Outf("{{green}}event:{{/}} reset from %s\n", utils.FormatAmount(e.OldValue))
	}
}

func target(action chain.Action) codec.Address {
	switch a := action.(type) {
	case *actions.Increment:
		return a.Counter
	case *actions.Decrement:
		return a.Counter
	case *actions.Reset:
		return a.Counter
	case *actions.TransferOwnership:
		return a.Counter
	default:
		return codec.EmptyAddress
	}
}

// PrintHint prints a remediation for errors with a known cause.
func PrintHint(err error) {
	if hint := hint(err); len(hint) > 0 {
		utils.Outf("{{yellow}}hint:{{/}} %s\n", hint)
	}
}

func hint(err error) string {
	switch counter.Kind(err) {
	case "NotOwner":
		return "use the owner key (counter-cli key set) or have the owner transfer ownership"
	case "NotDeployed":
		return "deploy a counter first (counter-cli deploy) and set COUNTER_ADDR"
	case "Underflow":
		return "the step is larger than the current value; check counter-cli current"
	case "InvalidStep":
		return "steps must be greater than zero"
	}
	switch {
	case errors.Is(err, ErrMissingCounter):
		return "run counter-cli deploy, then set COUNTER_ADDR to the printed address"
	case vm.IsClosed(err), strings.Contains(err.Error(), "lock"):
		return "another process may be using the ledger database"
	default:
		return ""
	}
}
