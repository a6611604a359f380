// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/handshake"
)

// KeyDirection tells which traffic keys were replaced.
type KeyDirection int

// KeyDirection enums.
const (
	KeyDirectionRead KeyDirection = iota + 1
	KeyDirectionWrite
)

func (d KeyDirection) String() string {
	switch d {
	case KeyDirectionRead:
		return "read"
	case KeyDirectionWrite:
		return "write"
	default:
		return "unknown"
	}
}

// A Tracer records events of a single client connection. Every field is
// optional.
type Tracer struct {
	StartedHandshake         func()
	SentHandshakeMessage     func(t handshake.Type, length int)
	ReceivedHandshakeMessage func(t handshake.Type, length int)
	CompletedHandshake       func(suite ciphersuite.ID)
	UpdatedKeys              func(direction KeyDirection)
	SentAlert                func(a alert.Alert)
	ReceivedAlert            func(a alert.Alert)
	Downgraded               func()
	ClosedConnection         func(err error)
}

func (t *Tracer) startedHandshake() {
	if t != nil && t.StartedHandshake != nil {
		t.StartedHandshake()
	}
}

func (t *Tracer) sentHandshakeMessage(typ handshake.Type, length int) {
	if t != nil && t.SentHandshakeMessage != nil {
		t.SentHandshakeMessage(typ, length)
	}
}

func (t *Tracer) receivedHandshakeMessage(typ handshake.Type, length int) {
	if t != nil && t.ReceivedHandshakeMessage != nil {
		t.ReceivedHandshakeMessage(typ, length)
	}
}

func (t *Tracer) completedHandshake(suite ciphersuite.ID) {
	if t != nil && t.CompletedHandshake != nil {
		t.CompletedHandshake(suite)
	}
}

func (t *Tracer) updatedKeys(direction KeyDirection) {
	if t != nil && t.UpdatedKeys != nil {
		t.UpdatedKeys(direction)
	}
}

func (t *Tracer) sentAlert(a alert.Alert) {
	if t != nil && t.SentAlert != nil {
		t.SentAlert(a)
	}
}

func (t *Tracer) receivedAlert(a alert.Alert) {
	if t != nil && t.ReceivedAlert != nil {
		t.ReceivedAlert(a)
	}
}

func (t *Tracer) downgraded() {
	if t != nil && t.Downgraded != nil {
		t.Downgraded()
	}
}

func (t *Tracer) closedConnection(err error) {
	if t != nil && t.ClosedConnection != nil {
		t.ClosedConnection(err)
	}
}
