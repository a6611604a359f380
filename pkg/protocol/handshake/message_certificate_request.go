// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/protocol/extension"
	"golang.org/x/crypto/cryptobyte"
)

// CertificateRequest is sent by a server that wants the client to
// authenticate with a certificate.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.3.2
type CertificateRequest struct {
	// CertificateRequestContext is echoed in the client's Certificate.
	CertificateRequestContext []byte

	// The signature_algorithms extension is REQUIRED per RFC 8446.
	Extensions extension.List
}

// Type returns the handshake message type.
func (m CertificateRequest) Type() Type {
	return TypeCertificateRequest
}

// Marshal encodes the CertificateRequest into its wire format.
func (m *CertificateRequest) Marshal() ([]byte, error) {
	if len(m.CertificateRequestContext) > maxRequestContextLength {
		return nil, errRequestContextTooLong
	}
	if m.Extensions.SignatureAlgorithms() == nil {
		return nil, errMissingSignatureAlgorithms
	}

	exts, err := extension.Marshal(m.Extensions)
	if err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.CertificateRequestContext)
	})
	b.AddBytes(exts)

	return b.Bytes()
}

// Unmarshal decodes the CertificateRequest from its wire format.
func (m *CertificateRequest) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var requestContext cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&requestContext) || len(s) < 2 {
		return errBufferTooSmall
	}

	exts, err := extension.Unmarshal(s, extension.ContextCertificateRequest)
	if err != nil {
		return err
	}
	if exts.SignatureAlgorithms() == nil {
		return errMissingSignatureAlgorithms
	}

	m.CertificateRequestContext = append([]byte{}, requestContext...)
	m.Extensions = exts

	return nil
}
