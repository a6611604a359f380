// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/protocol/extension"
	"golang.org/x/crypto/cryptobyte"
)

// NewSessionTicket is a post-handshake message offering a resumption
// ticket.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.6.1
type NewSessionTicket struct {
	Lifetime   uint32
	AgeAdd     uint32
	Nonce      []byte
	Ticket     []byte
	Extensions extension.List
}

// Type returns the Handshake Type.
func (m NewSessionTicket) Type() Type {
	return TypeNewSessionTicket
}

// Marshal encodes the Handshake.
func (m *NewSessionTicket) Marshal() ([]byte, error) {
	if len(m.Nonce) > 255 || len(m.Ticket) == 0 || len(m.Ticket) > 0xffff {
		return nil, errInvalidNewSessionTicket
	}

	exts, err := extension.Marshal(m.Extensions)
	if err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddUint32(m.Lifetime)
	b.AddUint32(m.AgeAdd)
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.Nonce)
	})
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.Ticket)
	})
	b.AddBytes(exts)

	return b.Bytes()
}

// Unmarshal populates the message from encoded data. Extensions (only
// early_data is defined) are kept as unknown.
func (m *NewSessionTicket) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var nonce, ticket cryptobyte.String
	if !s.ReadUint32(&m.Lifetime) || !s.ReadUint32(&m.AgeAdd) ||
		!s.ReadUint8LengthPrefixed(&nonce) || !s.ReadUint16LengthPrefixed(&ticket) || len(s) < 2 {
		return errBufferTooSmall
	}
	if ticket.Empty() {
		return errInvalidNewSessionTicket
	}

	exts, err := extension.Unmarshal(s, extension.ContextEncryptedExtensions)
	if err != nil {
		return err
	}

	m.Nonce = append([]byte{}, nonce...)
	m.Ticket = append([]byte{}, ticket...)
	m.Extensions = exts

	return nil
}
