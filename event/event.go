// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var _ Subscription[struct{}] = (*SubscriptionFunc[struct{}])(nil)

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscriptions is a concurrency-safe set of subscribers notified in the
// order they subscribed.
type Subscriptions[T any] struct {
	lock   sync.RWMutex
	nextID uint64
	ids    []uint64
	subs   []Subscription[T]
}

// Subscribe adds [sub] and returns a function that removes and closes it.
func (s *Subscriptions[T]) Subscribe(sub Subscription[T]) func() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++
	s.ids = append(s.ids, id)
	s.subs = append(s.subs, sub)
	return func() error {
		return s.remove(id)
	}
}

func (s *Subscriptions[T]) remove(id uint64) error {
	s.lock.Lock()
	for i, existing := range s.ids {
		if existing != id {
			continue
		}
		sub := s.subs[i]
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		s.subs = append(s.subs[:i], s.subs[i+1:]...)
		s.lock.Unlock()
		return sub.Close()
	}
	s.lock.Unlock()
	return nil
}

func (s *Subscriptions[T]) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.subs)
}

// Notify delivers [e] to every current subscriber.
func (s *Subscriptions[T]) Notify(ctx context.Context, e T) error {
	s.lock.RLock()
	subs := make([]Subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.lock.RUnlock()

	return NotifyAll(ctx, e, subs...)
}

// Close closes and removes every subscriber.
func (s *Subscriptions[T]) Close() error {
	s.lock.Lock()
	subs := s.subs
	s.ids = nil
	s.subs = nil
	s.lock.Unlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
