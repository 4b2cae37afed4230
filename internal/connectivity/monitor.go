// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity tracks whether the backend is reachable and turns a
// settled reconnect into a drain of the sync queue.
//
// [Monitor] is the observable state, [Prober] feeds it from live health
// checks and [Settler] debounces the offline→online transition before
// invoking the drain.
package connectivity

import (
	"sync"
)

// State is the reachability of the backend.
type State int

const (
	// Unreachable is the initial state: until the first probe succeeds the
	// client behaves as offline.
	Unreachable State = iota
	Reachable
)

func (s State) String() string {
	if s == Reachable {
		return "reachable"
	}
	return "unreachable"
}

type subscriber struct {
	id int
	fn func(State)
}

// Monitor holds the current [State] and notifies subscribers on transitions.
// It is safe for concurrent use.
type Monitor struct {
	mu     sync.Mutex
	state  State
	subs   []subscriber
	nextID int
}

// NewMonitor returns a monitor in the [Unreachable] state.
func NewMonitor() *Monitor {
	return &Monitor{state: Unreachable}
}

// Current returns the last observed state.
func (m *Monitor) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reachable is shorthand for Current() == Reachable.
func (m *Monitor) Reachable() bool {
	return m.Current() == Reachable
}

// Subscribe registers fn for state transitions. fn is called synchronously
// from Set, in subscription order, and must not block. The returned func
// removes the subscription.
func (m *Monitor) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Set records s. Subscribers are notified only when the state changes.
func (m *Monitor) Set(s State) {
	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return
	}
	m.state = s
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fn(s)
	}
}
