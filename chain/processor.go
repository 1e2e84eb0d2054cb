// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"
)

// Processor executes one transaction at a time against committed state.
// Callers must serialize calls to [Execute] and persist the returned
// [tstate.TState] before the next call.
type Processor struct {
	rules   Rules
	tracer  trace.Tracer
	metrics *Metrics
}

func NewProcessor(rules Rules, tracer trace.Tracer, metrics *Metrics) *Processor {
	return &Processor{
		rules:   rules,
		tracer:  tracer,
		metrics: metrics,
	}
}

func (p *Processor) Rules() Rules {
	return p.rules
}

// Execute runs [tx] on top of [db] at time [now] (in milliseconds).
//
// If [tx] is rejected before its action runs, only an error is returned.
// If its action fails, the returned [Result] records the failure, the error
// is the action's, and no state is returned. On success the returned
// [tstate.TState] holds every change (the action's, the new height, and the
// transaction marker) and must be written atomically.
func (p *Processor) Execute(
	ctx context.Context,
	db database.KeyValueReader,
	tx *Transaction,
	now int64,
) (*Result, *tstate.TState, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Execute")
	defer span.End()

	start := time.Now()
	defer func() {
		p.metrics.execute.Observe(float64(time.Since(start)))
	}()

	if err := tx.Base.Execute(p.rules, now); err != nil {
		p.metrics.txsRejected.Inc()
		return nil, nil, err
	}
	if err := tx.Verify(ctx); err != nil {
		p.metrics.txsRejected.Inc()
		return nil, nil, err
	}

	stateKeys := tx.StateKeys()
	values, err := storage.Fetch(db, maps.Keys(stateKeys))
	if err != nil {
		return nil, nil, err
	}
	ts := tstate.New(len(stateKeys))
	view := ts.NewView(stateKeys, values)

	if _, ok, err := storage.GetTx(ctx, view, tx.ID()); err != nil {
		return nil, nil, err
	} else if ok {
		p.metrics.txsRejected.Inc()
		return nil, nil, ErrDuplicateTx
	}
	height, err := storage.GetHeight(ctx, view)
	if err != nil {
		return nil, nil, err
	}

	checkpoint := view.OpIndex()
	event, err := tx.Action.Execute(ctx, view, now, tx.Actor(), tx.ID())
	if err == nil && event == nil {
		err = ErrMissingEvent
	}
	if err != nil {
		view.Rollback(ctx, checkpoint)
		p.metrics.txsFailed.Inc()
		return &Result{
			Success: false,
			Error:   utils.ErrBytes(err),
			Height:  height,
		}, nil, err
	}

	height++
	if err := storage.SetHeight(ctx, view, height); err != nil {
		return nil, nil, err
	}
	if err := storage.StoreTx(ctx, view, tx.ID(), height); err != nil {
		return nil, nil, err
	}
	view.Commit()
	p.metrics.txsAccepted.Inc()
	p.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	return &Result{
		Success: true,
		Event:   event.Bytes(),
		Height:  height,
	}, ts, nil
}
