// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/protocol/alert"
)

const (
	updateNotRequested = 0
	updateRequested    = 1
)

// KeyUpdate indicates that the sender is updating its sending keys.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.6.3
type KeyUpdate struct {
	RequestUpdate bool
}

// Type returns the Handshake Type.
func (m KeyUpdate) Type() Type {
	return TypeKeyUpdate
}

// Marshal encodes the Handshake.
func (m *KeyUpdate) Marshal() ([]byte, error) {
	if m.RequestUpdate {
		return []byte{updateRequested}, nil
	}

	return []byte{updateNotRequested}, nil
}

// Unmarshal populates the message from encoded data.
func (m *KeyUpdate) Unmarshal(data []byte) error {
	if len(data) != 1 {
		return errLengthMismatch
	}

	switch data[0] {
	case updateNotRequested:
		m.RequestUpdate = false
	case updateRequested:
		m.RequestUpdate = true
	default:
		// RFC 8446 4.6.3
		//    If an implementation receives any other value, it MUST terminate
		//    the connection with an "illegal_parameter" alert.
		return alert.Errorf(alert.IllegalParameter, "invalid KeyUpdate request_update %d", data[0])
	}

	return nil
}
