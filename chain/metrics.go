// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	txsAccepted prometheus.Counter
	txsFailed   prometheus.Counter
	txsRejected prometheus.Counter

	stateChanges prometheus.Counter
	execute      metric.Averager
}

func NewMetrics() (*prometheus.Registry, *Metrics, error) {
	r := prometheus.NewRegistry()

	execute, err := metric.NewAverager(
		"chain_execute",
		"time spent executing a transaction",
		r,
	)
	if err != nil {
		return nil, nil, err
	}

	m := &Metrics{
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_accepted",
			Help:      "number of transactions that executed successfully",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of transactions whose action failed",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_rejected",
			Help:      "number of transactions rejected before execution",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of keys written by accepted transactions",
		}),
		execute: execute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsAccepted),
		r.Register(m.txsFailed),
		r.Register(m.txsRejected),
		r.Register(m.stateChanges),
	)
	return r, m, errs.Err
}

func (m *Metrics) TxsAccepted() prometheus.Counter { return m.txsAccepted }

func (m *Metrics) TxsFailed() prometheus.Counter { return m.txsFailed }

func (m *Metrics) TxsRejected() prometheus.Counter { return m.txsRejected }
