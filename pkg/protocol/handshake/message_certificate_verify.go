// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"crypto/tls"

	"golang.org/x/crypto/cryptobyte"
)

// CertificateVerify proves possession of the private key of the
// certificate sent just before it.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.3
type CertificateVerify struct {
	Scheme    tls.SignatureScheme
	Signature []byte
}

// Type returns the Handshake Type.
func (m CertificateVerify) Type() Type {
	return TypeCertificateVerify
}

// Marshal encodes the Handshake.
func (m *CertificateVerify) Marshal() ([]byte, error) {
	if len(m.Signature) == 0 || len(m.Signature) > 0xffff {
		return nil, errInvalidSignature
	}

	var b cryptobyte.Builder
	b.AddUint16(uint16(m.Scheme))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.Signature)
	})

	return b.Bytes()
}

// Unmarshal populates the message from encoded data.
func (m *CertificateVerify) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var scheme uint16
	var signature cryptobyte.String
	if !s.ReadUint16(&scheme) || !s.ReadUint16LengthPrefixed(&signature) {
		return errBufferTooSmall
	}
	if !s.Empty() {
		return errLengthMismatch
	}
	if signature.Empty() {
		return errInvalidSignature
	}

	m.Scheme = tls.SignatureScheme(scheme)
	m.Signature = append([]byte{}, signature...)

	return nil
}
