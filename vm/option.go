// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"time"

	"github.com/ava-labs/avalanchego/trace"
)

type Option func(*VM)

// WithClock overrides the source of the current time used to check
// transaction expiry and to build new transactions.
func WithClock(now func() time.Time) Option {
	return func(vm *VM) {
		vm.now = now
	}
}

// WithTracer replaces the tracer built from the config.
func WithTracer(tracer trace.Tracer) Option {
	return func(vm *VM) {
		vm.tracer = tracer
	}
}
