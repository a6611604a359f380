// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/protocol/extension"
	"golang.org/x/crypto/cryptobyte"
)

const maxRequestContextLength = 255

// CertificateEntry represents a single certificate entry in the Certificate message.
// Each entry contains certificate data and optional per-certificate extensions.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.2
type CertificateEntry struct {
	// CertificateData contains the DER-encoded X.509 certificate.
	CertificateData []byte

	// Extensions contains per-certificate extensions.
	// Examples: OCSP status, SignedCertificateTimestamp, etc.
	Extensions extension.List
}

// Certificate represents the Certificate handshake message.
// This message is used to transport the certificate chain and associated extensions.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.2
type Certificate struct {
	// CertificateRequestContext is an opaque value that binds this certificate
	// to a specific CertificateRequest (for client certificates) or is empty
	// for server certificates.
	CertificateRequestContext []byte

	// CertificateList contains the certificate chain with each entry having
	// optional per-certificate extensions.
	CertificateList []CertificateEntry
}

// Type returns the handshake message type.
func (m Certificate) Type() Type {
	return TypeCertificate
}

// Chain returns the DER certificates in order.
func (m *Certificate) Chain() [][]byte {
	out := make([][]byte, 0, len(m.CertificateList))
	for _, e := range m.CertificateList {
		out = append(out, e.CertificateData)
	}

	return out
}

// Marshal encodes the Certificate into its wire format.
//
// Wire format:
//
//	[1 byte]  certificate_request_context length
//	[0-255]   certificate_request_context data
//	[3 bytes] certificate_list length
//	For each certificate:
//	  [3 bytes]  cert_data length
//	  [variable] cert_data (DER certificate)
//	  [2 bytes]  extensions length
//	  [variable] extensions data
func (m *Certificate) Marshal() ([]byte, error) {
	if len(m.CertificateRequestContext) > maxRequestContextLength {
		return nil, errRequestContextTooLong
	}

	entries := make([][]byte, 0, len(m.CertificateList))
	for _, entry := range m.CertificateList {
		if len(entry.CertificateData) == 0 {
			return nil, errInvalidCertificateEntry
		}
		exts, err := extension.Marshal(entry.Extensions)
		if err != nil {
			return nil, err
		}
		entries = append(entries, exts)
	}

	var b cryptobyte.Builder
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.CertificateRequestContext)
	})
	b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
		for i, entry := range m.CertificateList {
			b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes(entry.CertificateData)
			})
			b.AddBytes(entries[i])
		}
	})

	return b.Bytes()
}

// Unmarshal decodes the Certificate from its wire format. An empty
// certificate_list is accepted here; whether it is legal depends on the
// receiving side.
func (m *Certificate) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var requestContext, list cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&requestContext) || !s.ReadUint24LengthPrefixed(&list) {
		return errBufferTooSmall
	}
	if !s.Empty() {
		return errLengthMismatch
	}

	m.CertificateRequestContext = append([]byte{}, requestContext...)
	m.CertificateList = []CertificateEntry{}
	for !list.Empty() {
		var certData, rawExts cryptobyte.String
		if !list.ReadUint24LengthPrefixed(&certData) || certData.Empty() {
			return errInvalidCertificateEntry
		}

		extStart := list
		if !list.ReadUint16LengthPrefixed(&rawExts) {
			return errInvalidCertificateEntry
		}
		exts, err := extension.Unmarshal(extStart[:2+len(rawExts)], extension.ContextCertificate)
		if err != nil {
			return err
		}

		m.CertificateList = append(m.CertificateList, CertificateEntry{
			CertificateData: append([]byte{}, certData...),
			Extensions:      exts,
		})
	}

	return nil
}
