// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/utils"
	"github.com/ava-labs/countervm/vm"
)

var _ cli.Controller = (*Controller)(nil)

type Handler struct {
	h *cli.Handler

	configPath  string
	counterAddr string

	vm *vm.VM
}

func NewHandler(h *cli.Handler, configPath string, counterAddr string) *Handler {
	return &Handler{
		h:           h,
		configPath:  configPath,
		counterAddr: counterAddr,
	}
}

func (h *Handler) Root() *cli.Handler {
	return h.h
}

// VM opens the ledger on first use.
func (h *Handler) VM() (*vm.VM, error) {
	if h.vm != nil {
		return h.vm, nil
	}
	cfg, err := h.loadConfig()
	if err != nil {
		return nil, err
	}
	log := cfg.NewLogger(consts.Name, os.Stderr)
	v, err := vm.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Debug("opened ledger", zap.String("path", cfg.DatabasePath))
	h.vm = v
	return v, nil
}

func (h *Handler) loadConfig() (*config.Config, error) {
	if len(h.configPath) == 0 {
		return config.New(nil)
	}
	return config.Load(h.configPath)
}

// DefaultActor returns the default key and a factory that signs with it.
func (h *Handler) DefaultActor() (*auth.PrivateKey, chain.AuthFactory, error) {
	priv, err := h.h.GetDefaultKey(true)
	if err != nil {
		return nil, nil, err
	}
	factory, err := auth.GetFactory(priv)
	if err != nil {
		return nil, nil, err
	}
	return priv, factory, nil
}

// Counter resolves the counter to operate on: the --counter flag or
// COUNTER_ADDR, then the last counter deployed from this CLI.
func (h *Handler) Counter() (codec.Address, error) {
	if len(h.counterAddr) > 0 {
		return codec.ParseAddressBech32(consts.HRP, h.counterAddr)
	}
	contract, err := h.h.GetDefaultCounter()
	if errors.Is(err, cli.ErrNoCounter) {
		return codec.EmptyAddress, ErrMissingCounter
	}
	if err != nil {
		return codec.EmptyAddress, err
	}
	utils.Outf("{{yellow}}counter:{{/}} %s\n", codec.MustAddressBech32(consts.HRP, contract))
	return contract, nil
}

// Submit signs [action] with the default key and executes it.
func (h *Handler) Submit(ctx context.Context, action chain.Action) (*chain.Transaction, *chain.Result, error) {
	v, err := h.VM()
	if err != nil {
		return nil, nil, err
	}
	_, factory, err := h.DefaultActor()
	if err != nil {
		return nil, nil, err
	}
	tx, err := v.NewTx(action, factory)
	if err != nil {
		return nil, nil, err
	}
	result, err := v.Submit(ctx, tx)
	if err != nil {
		return tx, result, err
	}
	utils.Outf("{{green}}txID:{{/}} %s {{green}}height:{{/}} %d\n", tx.ID(), result.Height)
	return tx, result, nil
}

func (h *Handler) Close() error {
	errs := wrappers.Errs{}
	if h.vm != nil {
		errs.Add(h.vm.Close())
		h.vm = nil
	}
	errs.Add(h.h.CloseDatabase())
	return errs.Err
}

type Controller struct {
	databasePath string
}

func NewController(databasePath string) *Controller {
	return &Controller{databasePath}
}

func (c *Controller) DatabasePath() string {
	return c.databasePath
}

func (*Controller) Address(addr codec.Address) string {
	return codec.MustAddressBech32(consts.HRP, addr)
}

func (*Controller) ParseAddress(address string) (codec.Address, error) {
	return codec.ParseAddressBech32(consts.HRP, address)
}
