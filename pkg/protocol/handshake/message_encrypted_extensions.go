// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/protocol/extension"
)

// EncryptedExtensions carries the server extensions that are not needed to
// establish the cryptographic context.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.3.1
type EncryptedExtensions struct {
	Extensions extension.List
}

// Type returns the Handshake Type.
func (m EncryptedExtensions) Type() Type {
	return TypeEncryptedExtensions
}

// Marshal encodes the Handshake.
func (m *EncryptedExtensions) Marshal() ([]byte, error) {
	return extension.Marshal(m.Extensions)
}

// Unmarshal populates the message from encoded data.
func (m *EncryptedExtensions) Unmarshal(data []byte) error {
	if len(data) < 2 {
		return errBufferTooSmall
	}

	exts, err := extension.Unmarshal(data, extension.ContextEncryptedExtensions)
	if err != nil {
		return err
	}
	m.Extensions = exts

	return nil
}
