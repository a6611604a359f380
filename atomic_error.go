// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import "sync"

// atomicError holds the first error that closed a connection. Later stores
// are ignored so every caller observes the same failure.
type atomicError struct {
	mu  sync.Mutex
	val error
}

func (a *atomicError) store(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.val == nil {
		a.val = err
	}
}

func (a *atomicError) load() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.val
}
