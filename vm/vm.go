// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/event"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/utils"

	htrace "github.com/ava-labs/countervm/trace"
)

const dbNamespace = "db"

// Accepted describes a transaction that executed successfully.
type Accepted struct {
	TxID   ids.ID
	Actor  codec.Address
	Action chain.Action
	Height uint64
	Event  codec.Typed
}

// VM is the host ledger. It executes transactions one at a time in the
// order they are submitted and persists every successful transaction in a
// single batch, so readers never observe a partially applied transaction.
type VM struct {
	config *config.Config
	log    logging.Logger
	tracer trace.Tracer
	now    func() time.Time

	gatherer  metrics.MultiGatherer
	parser    *chain.Parser
	processor *chain.Processor

	// [lock] serializes transaction execution and orders reads after the
	// last committed write.
	lock   sync.RWMutex
	db     database.Database
	closed bool

	subscriptions event.Subscriptions[*Accepted]
}

// Open creates the pebble database described by [cfg] and returns a VM
// backed by it.
func Open(cfg *config.Config, log logging.Logger, opts ...Option) (*VM, error) {
	gatherer := metrics.NewPrefixGatherer()
	db, err := storage.New(cfg.Pebble, cfg.DatabasePath, dbNamespace, gatherer)
	if err != nil {
		return nil, err
	}
	vm, err := New(cfg, log, db, gatherer, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return vm, nil
}

// New returns a VM over [db]. The VM takes ownership of [db].
func New(
	cfg *config.Config,
	log logging.Logger,
	db database.Database,
	gatherer metrics.MultiGatherer,
	opts ...Option,
) (*VM, error) {
	vm := &VM{
		config:   cfg,
		log:      log,
		now:      time.Now,
		gatherer: gatherer,
		db:       db,
	}
	for _, opt := range opts {
		opt(vm)
	}

	if vm.tracer == nil {
		tracer, err := htrace.New(cfg.GetTraceConfig())
		if err != nil {
			return nil, err
		}
		vm.tracer = tracer
	}

	actionRegistry, err := actions.Registry()
	if err != nil {
		return nil, err
	}
	authRegistry, err := auth.Registry()
	if err != nil {
		return nil, err
	}
	vm.parser = chain.NewParser(actionRegistry, authRegistry)

	registry, chainMetrics, err := chain.NewMetrics()
	if err != nil {
		return nil, err
	}
	if err := gatherer.Register(consts.Name, registry); err != nil {
		return nil, err
	}
	vm.processor = chain.NewProcessor(cfg.Rules(), vm.tracer, chainMetrics)

	height, err := vm.Height(context.Background())
	if err != nil {
		return nil, err
	}
	vm.log.Info("initialized vm",
		zap.Stringer("chainID", cfg.ChainID),
		zap.Uint64("height", height),
	)
	return vm, nil
}

func (vm *VM) Parser() *chain.Parser {
	return vm.parser
}

func (vm *VM) Rules() chain.Rules {
	return vm.processor.Rules()
}

func (vm *VM) Gatherer() metrics.MultiGatherer {
	return vm.gatherer
}

// NewTx signs [action] with [factory], expiring at the end of the validity
// window.
func (vm *VM) NewTx(action chain.Action, factory chain.AuthFactory) (*chain.Transaction, error) {
	rules := vm.Rules()
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(vm.now().UnixMilli(), rules.ValidityWindow),
		ChainID:   rules.ChainID,
	}
	return chain.NewTx(base, action).Sign(factory, vm.parser)
}

// SubmitBytes parses [b] and submits the transaction it encodes.
func (vm *VM) SubmitBytes(ctx context.Context, b []byte) (*chain.Result, error) {
	tx, err := chain.UnmarshalTx(b, vm.parser)
	if err != nil {
		return nil, err
	}
	return vm.Submit(ctx, tx)
}

// Submit executes [tx] and, if it succeeds, commits it.
//
// A transaction rejected before execution returns only an error. A
// transaction whose action fails returns the failed [chain.Result] together
// with the action's error; nothing is written in either case.
func (vm *VM) Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.closed {
		return nil, ErrClosed
	}

	result, ts, err := vm.processor.Execute(ctx, vm.db, tx, vm.now().UnixMilli())
	switch {
	case result == nil:
		vm.log.Debug("rejected transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	case err != nil:
		vm.log.Info("transaction failed",
			zap.Stringer("txID", tx.ID()),
			zap.Stringer("actor", tx.Actor()),
			zap.String("kind", counter.Kind(err)),
			zap.Error(err),
		)
		return result, err
	}

	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		vm.log.Error("failed to commit transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}

	e, err := counter.UnmarshalEvent(result.Event)
	if err != nil {
		return nil, err
	}
	vm.log.Debug("accepted transaction",
		zap.Stringer("txID", tx.ID()),
		zap.Uint64("height", result.Height),
		zap.Uint8("event", e.GetTypeID()),
	)
	accepted := &Accepted{
		TxID:   tx.ID(),
		Actor:  tx.Actor(),
		Action: tx.Action,
		Height: result.Height,
		Event:  e,
	}
	if err := vm.subscriptions.Notify(ctx, accepted); err != nil {
		vm.log.Warn("subscriber failed",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
	}
	return result, nil
}

// Subscribe registers [sub] to receive every accepted transaction, in
// order, after it is committed. The returned function unsubscribes.
//
// [sub] is called while the VM is locked and must not call back into it.
func (vm *VM) Subscribe(sub event.Subscription[*Accepted]) func() error {
	return vm.subscriptions.Subscribe(sub)
}

func (vm *VM) Owner(ctx context.Context, contract codec.Address) (codec.Address, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if vm.closed {
		return codec.EmptyAddress, ErrClosed
	}
	return counter.Owner(ctx, storage.NewReadOnly(vm.db), contract)
}

func (vm *VM) Current(ctx context.Context, contract codec.Address) (*uint256.Int, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if vm.closed {
		return nil, ErrClosed
	}
	return counter.Current(ctx, storage.NewReadOnly(vm.db), contract)
}

// Height returns the number of accepted transactions.
func (vm *VM) Height(ctx context.Context) (uint64, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if vm.closed {
		return 0, ErrClosed
	}
	return storage.GetHeight(ctx, storage.NewReadOnly(vm.db))
}

// TxHeight returns the height [txID] was accepted at, if it was.
func (vm *VM) TxHeight(ctx context.Context, txID ids.ID) (uint64, bool, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if vm.closed {
		return 0, false, ErrClosed
	}
	return storage.GetTx(ctx, storage.NewReadOnly(vm.db), txID)
}

func (vm *VM) Close() error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.closed {
		return ErrClosed
	}
	vm.closed = true

	errs := wrappers.Errs{}
	errs.Add(
		vm.subscriptions.Close(),
		vm.tracer.Close(),
		vm.db.Close(),
	)
	if errs.Errored() {
		vm.log.Error("failed to close vm", zap.Error(errs.Err))
	}
	return errs.Err
}

// IsClosed reports whether [err] was caused by using a closed VM.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed) || errors.Is(err, database.ErrClosed)
}
